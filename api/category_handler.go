package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/studionord/backend/errs"
	"github.com/studionord/backend/models"
)

type categoryStore interface {
	FindAll() ([]*models.ServiceCategory, error)
	FindBySlug(slug string) (*models.ServiceCategory, error)
	SetImages(slug string, images []string) error
}

type categoryHandler struct {
	responder  Responder
	logger     zerolog.Logger
	categories categoryStore
}

func newCategoryHandler(categories categoryStore) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		categories: categories,
	}
}

// CategoryImagesRequest binds a showcase reference list to a category.
type CategoryImagesRequest struct {
	Slug   string   `json:"slug"`
	Images []string `json:"images"`
}

// getServiceCategories lists the seeded categories with their showcases.
func (h categoryHandler) getServiceCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categories.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "service categories", err))
			return
		}
		if categories == nil {
			categories = []*models.ServiceCategory{}
		}

		h.responder.WriteJSON(w, map[string]any{"serviceCategories": categories})
	}
}

// setCategoryImages replaces a category's showcase references wholesale.
func (h categoryHandler) setCategoryImages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CategoryImagesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.Slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("slug is required", "slug"))
			return
		}
		if len(req.Images) > models.MaxCategoryImages {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField(
				fmt.Sprintf("at most %d images per category", models.MaxCategoryImages), "images"))
			return
		}
		if req.Images == nil {
			req.Images = []string{}
		}

		if err := h.categories.SetImages(req.Slug, req.Images); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "service category", err))
			return
		}

		category, err := h.categories.FindBySlug(req.Slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "service category", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message":         "category images updated",
			"serviceCategory": category,
		})
	}
}
