package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/studionord/backend/errs"
	"github.com/studionord/backend/models"
	"github.com/studionord/backend/storage"
)

// maxHeroDescriptions caps the descriptive strings per slot.
const maxHeroDescriptions = 3

// heroUploadKinds are the accepted discriminators for hero asset uploads.
var heroUploadKinds = map[string]bool{
	"background": true,
	"navigation": true,
}

type heroStore interface {
	FindAll() ([]*models.HeroSlot, error)
	ReplaceAll(slots []*models.HeroSlot) error
	DeleteAll() error
}

type heroHandler struct {
	responder Responder
	logger    zerolog.Logger
	slots     heroStore
	gateway   *storage.Gateway
	slotCap   int
}

func newHeroHandler(slots heroStore, gateway *storage.Gateway, slotCap int) heroHandler {
	logger := log.With().Str("handlerName", "heroHandler").Logger()

	return heroHandler{
		responder: NewResponder(logger),
		logger:    logger,
		slots:     slots,
		gateway:   gateway,
		slotCap:   slotCap,
	}
}

// HeroSlotRequest is one entry of the replace-all payload.
type HeroSlotRequest struct {
	ProjectID       string   `json:"projectId"`
	Descriptions    []string `json:"descriptions,omitempty"`
	Images          []string `json:"images,omitempty"`
	BackgroundImage string   `json:"backgroundImage,omitempty"`
}

// HeroSaveRequest replaces the whole hero configuration.
type HeroSaveRequest struct {
	HeroProjects []HeroSlotRequest `json:"heroProjects"`
}

// getHeroSlots returns the current hero configuration ordered by position.
func (h heroHandler) getHeroSlots() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slots, err := h.slots.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "hero slots", err))
			return
		}
		if slots == nil {
			slots = []*models.HeroSlot{}
		}

		h.responder.WriteJSON(w, map[string]any{"heroProjects": slots})
	}
}

// saveHeroSlots replaces the configuration as a set. Validation runs in full
// before the store is touched, so an over-cap payload leaves the existing
// configuration intact.
func (h heroHandler) saveHeroSlots() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req HeroSaveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if len(req.HeroProjects) == 0 {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("heroProjects must be a non-empty array", "heroProjects"))
			return
		}
		if len(req.HeroProjects) > h.slotCap {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField(
				fmt.Sprintf("at most %d hero projects are allowed", h.slotCap), "heroProjects"))
			return
		}

		slots := make([]*models.HeroSlot, 0, len(req.HeroProjects))
		for i, entry := range req.HeroProjects {
			projectID, err := uuid.Parse(entry.ProjectID)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid project id: "+entry.ProjectID, "projectId"))
				return
			}
			if len(entry.Descriptions) > maxHeroDescriptions {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField(
					fmt.Sprintf("at most %d descriptions per hero project", maxHeroDescriptions), "descriptions"))
				return
			}

			slots = append(slots, &models.HeroSlot{
				ProjectID:       projectID,
				Position:        i + 1,
				Descriptions:    entry.Descriptions,
				Images:          entry.Images,
				BackgroundImage: entry.BackgroundImage,
			})
		}

		if err := h.slots.ReplaceAll(slots); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("replace", "hero slots", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "hero projects saved",
			"count":   len(slots),
		})
	}
}

// clearHeroSlots removes the whole configuration.
func (h heroHandler) clearHeroSlots() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.slots.DeleteAll(); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "hero slots", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "hero projects cleared"})
	}
}

// uploadHeroAsset stores a background or navigation image and returns its
// public URL. There is no dependent row write here, so the staged object is
// committed immediately.
func (h heroHandler) uploadHeroAsset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed multipart form"))
			return
		}

		kind := r.FormValue("type")
		if !heroUploadKinds[kind] {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("type must be one of: background, navigation", "type"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("image file is required", "file"))
			return
		}
		defer file.Close()

		staged, err := h.gateway.Stage(
			r.Context(),
			storage.BucketProjectImages,
			kind,
			header.Filename,
			header.Header.Get("Content-Type"),
			header.Size,
			file,
		)
		if err != nil {
			h.responder.WriteError(w, uploadError(err))
			return
		}
		staged.Commit()

		h.responder.WriteJSON(w, map[string]string{
			"url":      staged.URL,
			"fileName": staged.Key,
			"filePath": staged.Bucket + "/" + staged.Key,
		})
	}
}
