package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/studionord/backend/errs"
	"github.com/studionord/backend/storage"
)

type videoStore interface {
	Exists(ctx context.Context, bucket, key string) (bool, error)
	Get(ctx context.Context, bucket, key string) ([]byte, error)
}

type videoHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     videoStore
}

func newVideoHandler(store videoStore) videoHandler {
	logger := log.With().Str("handlerName", "videoHandler").Logger()

	return videoHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

var errInvalidRange = errors.New("invalid range header")

// byteRange is a half-open request window resolved against a known size.
type byteRange struct {
	start int64
	end   int64 // inclusive
}

func (b byteRange) length() int64 {
	return b.end - b.start + 1
}

// parseRange parses a single "bytes=start-end" header against the object
// size. The end byte is optional and defaults to the last byte. Multi-range
// requests are not supported.
func parseRange(header string, size int64) (byteRange, error) {
	spec, ok := strings.CutPrefix(header, "bytes=")
	if !ok || strings.Contains(spec, ",") {
		return byteRange{}, errInvalidRange
	}

	startStr, endStr, ok := strings.Cut(spec, "-")
	if !ok || startStr == "" {
		return byteRange{}, errInvalidRange
	}

	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil || start < 0 || start >= size {
		return byteRange{}, errInvalidRange
	}

	end := size - 1
	if endStr != "" {
		end, err = strconv.ParseInt(endStr, 10, 64)
		if err != nil || end < start {
			return byteRange{}, errInvalidRange
		}
		if end > size-1 {
			end = size - 1
		}
	}

	return byteRange{start: start, end: end}, nil
}

// serveVideo returns a stored video with partial-content support. The whole
// object is buffered before the first byte goes out, which bounds this to
// small and medium files. Existence is probed through a listing so a missing
// file yields a clean 404 instead of a masked storage error.
func (h videoHandler) serveVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename := chi.URLParam(r, "filename")
		if filename == "" || strings.Contains(filename, "/") {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid filename"))
			return
		}

		exists, err := h.store.Exists(r.Context(), storage.BucketVideos, filename)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to check video existence", err))
			return
		}
		if !exists {
			h.responder.WriteError(w, errs.NewNotFoundError("video not found"))
			return
		}

		data, err := h.store.Get(r.Context(), storage.BucketVideos, filename)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to download video", err))
			return
		}
		size := int64(len(data))

		w.Header().Set("Content-Type", contentTypeForVideo(filename))
		w.Header().Set("Accept-Ranges", "bytes")

		if rangeHeader := r.Header.Get("Range"); rangeHeader != "" {
			rng, err := parseRange(rangeHeader, size)
			if err != nil {
				w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", size))
				w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
				return
			}

			w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", rng.start, rng.end, size))
			w.Header().Set("Content-Length", strconv.FormatInt(rng.length(), 10))
			w.WriteHeader(http.StatusPartialContent)
			w.Write(data[rng.start : rng.end+1])
			return
		}

		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		w.Header().Set("ETag", fmt.Sprintf("%q", filename))
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
		w.Write(data)
	}
}

func contentTypeForVideo(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".webm"):
		return "video/webm"
	case strings.HasSuffix(filename, ".mov"):
		return "video/quicktime"
	default:
		return "video/mp4"
	}
}
