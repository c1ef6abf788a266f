package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// MaxUploadSize is the ceiling for a single image upload.
const MaxUploadSize = 5 << 20 // 5 MB

// uploadCacheControl is attached to every gateway upload; assets get unique
// names, so they can be cached forever.
const uploadCacheControl = "public, max-age=31536000, immutable"

var (
	ErrNotImage = errors.New("file is not an image")
	ErrTooLarge = errors.New("file exceeds maximum upload size")
)

// objectAPI is the slice of Client the gateway needs.
type objectAPI interface {
	Put(ctx context.Context, bucket, key string, data []byte, contentType, cacheControl string) error
	Delete(ctx context.Context, bucket, key string) error
	PublicURL(bucket, key string) string
}

// Outcome reports how a staged upload ended once its dependent write settled.
type Outcome int

const (
	// OutcomeCommitted means the dependent write succeeded and the object stays.
	OutcomeCommitted Outcome = iota
	// OutcomeCompensated means the dependent write failed and the object was removed.
	OutcomeCompensated
	// OutcomeOrphaned means the compensating delete also failed; the object
	// remains in storage and needs manual cleanup.
	OutcomeOrphaned
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCommitted:
		return "committed"
	case OutcomeCompensated:
		return "compensated"
	default:
		return "orphaned"
	}
}

// Gateway stages image uploads ahead of a dependent database write. Stage
// validates and uploads; the caller then settles the staged object with
// Commit or Abort depending on how the write went.
type Gateway struct {
	store  objectAPI
	logger zerolog.Logger
}

func NewGateway(store objectAPI, logger zerolog.Logger) *Gateway {
	return &Gateway{store: store, logger: logger}
}

// Staged is an uploaded object whose fate is not yet decided.
type Staged struct {
	gateway *Gateway
	settled bool

	Bucket string
	Key    string
	URL    string
}

// ValidateImage enforces the gateway's acceptance rules. It runs before any
// network call so rejected uploads never touch storage.
func ValidateImage(contentType string, size int64) error {
	if !strings.HasPrefix(contentType, "image/") {
		return ErrNotImage
	}
	if size > MaxUploadSize {
		return ErrTooLarge
	}
	return nil
}

// ObjectName builds a collision-resistant object key from a discriminator,
// the current time and a random suffix, preserving the original extension.
// No coordination step is needed; the random suffix carries the uniqueness.
func ObjectName(kind, originalName string) string {
	suffix := make([]byte, 4)
	rand.Read(suffix)

	ext := strings.ToLower(path.Ext(originalName))
	if ext == "" {
		ext = ".bin"
	}
	return fmt.Sprintf("%s-%d-%s%s", kind, time.Now().UnixMilli(), hex.EncodeToString(suffix), ext)
}

// Stage validates the payload, uploads it and returns the staged object with
// its public URL. On validation failure nothing is written.
func (g *Gateway) Stage(ctx context.Context, bucket, kind, originalName, contentType string, size int64, body io.Reader) (*Staged, error) {
	if err := ValidateImage(contentType, size); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(body, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > MaxUploadSize {
		return nil, ErrTooLarge
	}

	key := ObjectName(kind, originalName)
	if err := g.store.Put(ctx, bucket, key, data, contentType, uploadCacheControl); err != nil {
		return nil, err
	}

	return &Staged{
		gateway: g,
		Bucket:  bucket,
		Key:     key,
		URL:     g.store.PublicURL(bucket, key),
	}, nil
}

// Commit keeps the staged object.
func (s *Staged) Commit() Outcome {
	s.settled = true
	return OutcomeCommitted
}

// Abort issues the compensating delete after the dependent write failed. The
// delete is best effort: if it fails the object is orphaned in storage and
// the failure is logged for manual cleanup.
func (s *Staged) Abort(ctx context.Context) Outcome {
	if s.settled {
		return OutcomeCommitted
	}
	s.settled = true

	if err := s.gateway.store.Delete(ctx, s.Bucket, s.Key); err != nil {
		s.gateway.logger.Warn().
			Err(err).
			Str("bucket", s.Bucket).
			Str("key", s.Key).
			Msg("compensating delete failed, object orphaned")
		return OutcomeOrphaned
	}
	return OutcomeCompensated
}

// Remove deletes a stored object by its key. Errors are logged as warnings
// and reported to the caller, who typically continues anyway.
func (g *Gateway) Remove(ctx context.Context, bucket, key string) error {
	if err := g.store.Delete(ctx, bucket, key); err != nil {
		g.logger.Warn().
			Err(err).
			Str("bucket", bucket).
			Str("key", key).
			Msg("failed to delete stored object")
		return err
	}
	return nil
}
