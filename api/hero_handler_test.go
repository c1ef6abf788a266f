package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studionord/backend/models"
	"github.com/studionord/backend/storage"
)

func newHeroTestRouter(store *fakeHeroStore, objects *fakeObjectAPI, slotCap int) *chi.Mux {
	gateway := storage.NewGateway(objects, zerolog.Nop())
	h := newHeroHandler(store, gateway, slotCap)

	r := chi.NewRouter()
	r.Get("/api/hero-projects", h.getHeroSlots())
	r.Post("/api/hero-projects", h.saveHeroSlots())
	r.Delete("/api/hero-projects", h.clearHeroSlots())
	r.Post("/api/hero-projects/upload", h.uploadHeroAsset())
	return r
}

func heroPayload(n int) string {
	entries := make([]string, n)
	for i := range entries {
		entries[i] = fmt.Sprintf(`{"projectId":"%s","descriptions":["a"]}`, uuid.New())
	}
	return `{"heroProjects":[` + strings.Join(entries, ",") + `]}`
}

func TestSaveHeroSlotsAssignsPositions(t *testing.T) {
	store := &fakeHeroStore{}
	router := newHeroTestRouter(store, newFakeObjectAPI(), 4)

	req := httptest.NewRequest(http.MethodPost, "/api/hero-projects", strings.NewReader(heroPayload(3)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.slots, 3)
	for i, slot := range store.slots {
		assert.Equal(t, i+1, slot.Position)
	}
}

func TestSaveHeroSlotsOverCapLeavesStoreUntouched(t *testing.T) {
	existing := []*models.HeroSlot{{ID: uuid.New(), Position: 1}}
	store := &fakeHeroStore{slots: existing}
	router := newHeroTestRouter(store, newFakeObjectAPI(), 4)

	req := httptest.NewRequest(http.MethodPost, "/api/hero-projects", strings.NewReader(heroPayload(5)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, store.replaceCall)
	assert.Equal(t, existing, store.slots)
}

func TestSaveHeroSlotsRespectsConfiguredCap(t *testing.T) {
	store := &fakeHeroStore{}
	router := newHeroTestRouter(store, newFakeObjectAPI(), 3)

	req := httptest.NewRequest(http.MethodPost, "/api/hero-projects", strings.NewReader(heroPayload(4)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, store.replaceCall)
}

func TestSaveHeroSlotsTooManyDescriptions(t *testing.T) {
	store := &fakeHeroStore{}
	router := newHeroTestRouter(store, newFakeObjectAPI(), 4)

	payload := fmt.Sprintf(`{"heroProjects":[{"projectId":"%s","descriptions":["a","b","c","d"]}]}`, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/api/hero-projects", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, store.replaceCall)
}

func TestClearHeroSlots(t *testing.T) {
	store := &fakeHeroStore{slots: []*models.HeroSlot{{ID: uuid.New(), Position: 1}}}
	router := newHeroTestRouter(store, newFakeObjectAPI(), 4)

	req := httptest.NewRequest(http.MethodDelete, "/api/hero-projects", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.slots)
}

func TestUploadHeroAsset(t *testing.T) {
	objects := newFakeObjectAPI()
	router := newHeroTestRouter(&fakeHeroStore{}, objects, 4)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("type", "background"))
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="bg.jpg"`)
	header.Set("Content-Type", "image/jpeg")
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	part.Write(bytes.Repeat([]byte{0x01}, 512))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/hero-projects/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, objects.count())
	assert.Contains(t, rec.Body.String(), `"url"`)
	assert.Contains(t, rec.Body.String(), "background-")
}

func TestUploadHeroAssetRejectsUnknownKind(t *testing.T) {
	objects := newFakeObjectAPI()
	router := newHeroTestRouter(&fakeHeroStore{}, objects, 4)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("type", "banner"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/hero-projects/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, objects.count())
}
