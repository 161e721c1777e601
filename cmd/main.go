package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lingocert/lingocert/config"
	"github.com/lingocert/lingocert/database"
	_ "github.com/lingocert/lingocert/docs" // Swagger docs
	admnctrl "github.com/lingocert/lingocert/internal/controller/admin"
	authctrl "github.com/lingocert/lingocert/internal/controller/auth"
	userctrl "github.com/lingocert/lingocert/internal/controller/user"
	"github.com/lingocert/lingocert/internal/logger"
	"github.com/lingocert/lingocert/internal/middleware"
	"github.com/lingocert/lingocert/internal/model"
	"github.com/lingocert/lingocert/internal/repository"
	"github.com/lingocert/lingocert/internal/service"
	"github.com/lingocert/lingocert/internal/storage"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title LingoCert API
// @version 1.0
// @description Online English proficiency test platform with AI-assisted grading and CEFR certificates.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewQuestionRepository,
			repository.NewTestAttemptRepository,
			repository.NewCertificateRepository,
		),

		fx.Provide(
			service.NewGeminiLLMService,
			service.NewObjectiveGraderService,
			service.NewEssayGraderService,
			service.NewSpeakingGraderService,
			service.NewCEFRService,
			service.NewAuthService,
			service.NewQuestionService,
			service.NewAttemptService,
			service.NewGradingService,
			storage.NewAudioStorage,
		),

		fx.Provide(
			middleware.NewAuthMiddleware,
			authctrl.NewAuthController,
			userctrl.NewTestController,
			admnctrl.NewQuestionController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authMW *middleware.AuthMiddleware,
	authCtrl *authctrl.AuthController,
	testCtrl *userctrl.TestController,
	questionCtrl *admnctrl.QuestionController,
) {
	api := router.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/register", authCtrl.Register)
		authGroup.POST("/login", authCtrl.Login)

		authed := api.Group("")
		authed.Use(authMW.RequireAuth())
		{
			authed.GET("/tests/questions", testCtrl.GetExamPaper)
			authed.POST("/tests/submit", testCtrl.SubmitTest)
			authed.GET("/attempts", testCtrl.GetAttempts)
			authed.GET("/attempts/:attempt_id", testCtrl.GetAttemptDetail)
			authed.GET("/certificates/:certificate_id", testCtrl.GetCertificate)
			authed.POST("/recordings", testCtrl.UploadRecording)
		}

		adminGroup := api.Group("/admin")
		adminGroup.Use(authMW.RequireAuth(), authMW.RequireAdmin())
		{
			adminGroup.POST("/questions", questionCtrl.CreateQuestion)
			adminGroup.GET("/questions", questionCtrl.ListQuestions)
			adminGroup.PUT("/questions/:question_id", questionCtrl.UpdateQuestion)
			adminGroup.DELETE("/questions/:question_id", questionCtrl.DeleteQuestion)
		}
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("LingoCert API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.TestAttempt{},
		&model.Certificate{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed.")
	return nil
}
