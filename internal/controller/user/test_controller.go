package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lingocert/lingocert/internal/dto"
	"github.com/lingocert/lingocert/internal/middleware"
	"github.com/lingocert/lingocert/internal/service"
	"github.com/lingocert/lingocert/internal/storage"
	"github.com/rs/zerolog/log"
)

type TestController struct {
	gradingService  service.GradingService
	attemptService  service.AttemptService
	questionService service.QuestionService
	audioStorage    storage.AudioStorage
}

func NewTestController(
	gradingService service.GradingService,
	attemptService service.AttemptService,
	questionService service.QuestionService,
	audioStorage storage.AudioStorage,
) *TestController {
	return &TestController{
		gradingService:  gradingService,
		attemptService:  attemptService,
		questionService: questionService,
		audioStorage:    audioStorage,
	}
}

// GetExamPaper godoc
// @Summary Get the exam questions grouped by section
// @Description Correct answers are never included.
// @Tags Tests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ExamPaperDTO
// @Failure 401 {object} dto.ErrorResponse
// @Router /tests/questions [get]
func (c *TestController) GetExamPaper(ctx *gin.Context) {
	paper, err := c.questionService.GetExamPaper()
	if err != nil {
		log.Error().Err(err).Msg("GetExamPaper failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to load exam questions"})
		return
	}
	ctx.JSON(http.StatusOK, paper)
}

// SubmitTest godoc
// @Summary Submit a completed test for grading
// @Description Grades all four sections, persists the attempt and issues a certificate.
// @Tags Tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitTestRequest true "Answers by section plus the audio reference"
// @Success 200 {object} dto.GradeResultResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tests/submit [post]
func (c *TestController) SubmitTest(ctx *gin.Context) {
	var req dto.SubmitTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	userID := middleware.UserID(ctx)
	log.Info().Str("userID", userID).Msg("Received test submission")

	result, err := c.gradingService.GradeSubmission(ctx.Request.Context(), userID, req)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("Grading failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetAttempts godoc
// @Summary List the caller's attempt history, newest first
// @Tags Attempts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AttemptSummaryDTO
// @Failure 401 {object} dto.ErrorResponse
// @Router /attempts [get]
func (c *TestController) GetAttempts(ctx *gin.Context) {
	summaries, err := c.attemptService.GetUserAttempts(middleware.UserID(ctx))
	if err != nil {
		log.Error().Err(err).Msg("GetAttempts failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to load attempts"})
		return
	}
	ctx.JSON(http.StatusOK, summaries)
}

// GetAttemptDetail godoc
// @Summary Get the full record of one attempt
// @Tags Attempts
// @Produce json
// @Security BearerAuth
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptDetailDTO
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id} [get]
func (c *TestController) GetAttemptDetail(ctx *gin.Context) {
	detail, err := c.attemptService.GetAttemptDetail(middleware.UserID(ctx), ctx.Param("attempt_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAttemptNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, service.ErrNotOwner):
			ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})
		default:
			log.Error().Err(err).Msg("GetAttemptDetail failed")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to load attempt"})
		}
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// GetCertificate godoc
// @Summary Get certificate data for rendering
// @Tags Certificates
// @Produce json
// @Security BearerAuth
// @Param certificate_id path string true "Certificate ID, e.g. CERT-ABCDEF12-3"
// @Success 200 {object} dto.CertificateDTO
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /certificates/{certificate_id} [get]
func (c *TestController) GetCertificate(ctx *gin.Context) {
	cert, err := c.attemptService.GetCertificate(middleware.UserID(ctx), ctx.Param("certificate_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCertificateNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, service.ErrNotOwner):
			ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})
		default:
			log.Error().Err(err).Msg("GetCertificate failed")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to load certificate"})
		}
		return
	}
	ctx.JSON(http.StatusOK, cert)
}

// UploadRecording godoc
// @Summary Upload a speaking-section recording
// @Description Stores the audio under a user-scoped key and returns the reference to submit with the test.
// @Tags Tests
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Audio file"
// @Success 200 {object} dto.RecordingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /recordings [post]
func (c *TestController) UploadRecording(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "missing audio file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unreadable audio file"})
		return
	}
	defer file.Close()

	audioURL, err := c.audioStorage.Upload(ctx.Request.Context(), middleware.UserID(ctx), fileHeader.Filename, file)
	if err != nil {
		log.Error().Err(err).Msg("Recording upload failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to store recording"})
		return
	}
	ctx.JSON(http.StatusOK, dto.RecordingResponse{AudioURL: audioURL})
}
