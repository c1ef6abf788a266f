package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/studionord/backend/database"
	"github.com/studionord/backend/errs"
	"github.com/studionord/backend/models"
	"github.com/studionord/backend/storage"
)

// multipartMemoryLimit is what ParseMultipartForm may hold in memory; the
// upload itself is capped separately by the gateway.
const multipartMemoryLimit = storage.MaxUploadSize + (1 << 20)

type projectStore interface {
	FindAll() ([]*models.Project, error)
	FindByID(id uuid.UUID) (*models.Project, error)
	Add(project *models.Project) error
	Delete(id uuid.UUID) error
	Reorder(ctx context.Context, ids []uuid.UUID) (int, []database.ReorderFailure)
}

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  projectStore
	gateway   *storage.Gateway
}

func newProjectHandler(projects projectStore, gateway *storage.Gateway) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
		gateway:   gateway,
	}
}

// ProjectCollection is the list response for the portfolio grid.
type ProjectCollection struct {
	Projects []*models.Project `json:"projects"`
	Total    int               `json:"total"`
}

// ReorderRequest carries the full permutation of project ids in the desired
// display order.
type ReorderRequest struct {
	ProjectIDs []string `json:"projectIds"`
}

// getAllProjects returns every project sorted by display order.
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projects.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}
		if projects == nil {
			projects = []*models.Project{}
		}

		h.responder.WriteJSON(w, ProjectCollection{Projects: projects, Total: len(projects)})
	}
}

// createProject accepts a multipart form (title, categories as a JSON array,
// description, optional link, image file), stages the image upload and then
// writes the row. A failed row write triggers the gateway's compensating
// delete so the just-uploaded image does not linger.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed multipart form"))
			return
		}

		title := r.FormValue("title")
		description := r.FormValue("description")
		if title == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("title is required", "title"))
			return
		}
		if description == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("description is required", "description"))
			return
		}

		var categories []string
		if raw := r.FormValue("categories"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &categories); err != nil {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("categories must be a JSON array of strings", "categories"))
				return
			}
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("image file is required", "file"))
			return
		}
		defer file.Close()

		staged, err := h.gateway.Stage(
			r.Context(),
			storage.BucketProjects,
			"project",
			header.Filename,
			header.Header.Get("Content-Type"),
			header.Size,
			file,
		)
		if err != nil {
			h.responder.WriteError(w, uploadError(err))
			return
		}

		project := models.Project{
			Title:       title,
			Categories:  categories,
			Description: description,
			ImageURL:    staged.URL,
			ImagePath:   staged.Key,
		}
		if link := r.FormValue("link"); link != "" {
			project.Link = &link
		}

		if err := h.projects.Add(&project); err != nil {
			outcome := staged.Abort(r.Context())
			h.logger.Error().
				Err(err).
				Str("upload", outcome.String()).
				Msg("project row write failed after upload")
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}
		staged.Commit()

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, project)
	}
}

// reorderProjects rewrites every project's position to its index in the
// submitted list. Individual update failures do not abort the rest; they are
// reported per id alongside a 500.
func (h projectHandler) reorderProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ReorderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if len(req.ProjectIDs) == 0 {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("projectIds must be a non-empty array", "projectIds"))
			return
		}

		ids := make([]uuid.UUID, 0, len(req.ProjectIDs))
		for _, raw := range req.ProjectIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid project id: "+raw, "projectIds"))
				return
			}
			ids = append(ids, id)
		}

		updated, failures := h.projects.Reorder(r.Context(), ids)
		if len(failures) > 0 {
			h.logger.Error().
				Int("updated", updated).
				Int("failed", len(failures)).
				Msg("reorder completed with failures")

			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusInternalServerError)
			h.responder.WriteJSON(w, map[string]any{
				"success":  false,
				"updated":  updated,
				"failures": failures,
			})
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "projects reordered",
			"updated": updated,
		})
	}
}

// deleteProject removes the row and then best-effort deletes its stored
// image. Remaining positions are left as-is; an image that refuses to delete
// is logged and accepted as an orphan.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectIDStr := chi.URLParam(r, "projectID")
		projectID, err := uuid.Parse(projectIDStr)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.projects.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		if err := h.projects.Delete(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		if project.ImagePath != "" {
			// Row is already gone; an orphaned image is acceptable.
			_ = h.gateway.Remove(r.Context(), storage.BucketProjects, project.ImagePath)
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

// uploadError maps gateway validation failures to 400s and everything else
// to a storage-side 500.
func uploadError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotImage):
		return errs.NewBadRequestErrorWithField("file must be an image", "file")
	case errors.Is(err, storage.ErrTooLarge):
		return errs.NewBadRequestErrorWithField("file exceeds the 5 MB limit", "file")
	default:
		return errs.NewInternalErrorWithCause("failed to store upload", err)
	}
}
