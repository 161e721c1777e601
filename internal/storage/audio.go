package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/lingocert/lingocert/config"
	"github.com/rs/zerolog/log"
)

// AudioStorage stores speaking-section recordings under a user-scoped key and
// returns an opaque reference string. The grading pipeline carries the
// reference but never interprets it.
type AudioStorage interface {
	Upload(ctx context.Context, userID, filename string, r io.Reader) (string, error)
}

type gcsAudioStorage struct {
	client    *gcs.Client
	bucket    string
	cdnDomain string
}

// NewAudioStorage builds the GCS-backed AudioStorage. A missing bucket name is
// not fatal at startup; uploads fail until one is configured.
func NewAudioStorage(cfg *config.Config) (AudioStorage, error) {
	if cfg.Storage.AudioBucket == "" {
		log.Warn().Msg("AUDIO_BUCKET is not set. Recording uploads will be rejected.")
		return &gcsAudioStorage{}, nil
	}

	client, err := gcs.NewClient(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &gcsAudioStorage{
		client:    client,
		bucket:    cfg.Storage.AudioBucket,
		cdnDomain: cfg.Storage.AudioCDNDomain,
	}, nil
}

func (s *gcsAudioStorage) Upload(ctx context.Context, userID, filename string, r io.Reader) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("audio storage is not configured")
	}

	key := fmt.Sprintf("recordings/%s/%s%s", userID, uuid.NewString(), filepath.Ext(filename))

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write recording %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize recording %s: %w", key, err)
	}

	log.Info().Str("key", key).Msg("Recording uploaded")
	return s.publicURL(key), nil
}

func (s *gcsAudioStorage) publicURL(key string) string {
	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key)
}
