package api

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studionord/backend/database"
	"github.com/studionord/backend/models"
)

// fakeObjectAPI stands in for the storage client behind the upload gateway.
type fakeObjectAPI struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
	delErr  error
}

func newFakeObjectAPI() *fakeObjectAPI {
	return &fakeObjectAPI{objects: make(map[string][]byte)}
}

func (f *fakeObjectAPI) Put(_ context.Context, bucket, key string, data []byte, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[bucket+"/"+key] = data
	return nil
}

func (f *fakeObjectAPI) Delete(_ context.Context, bucket, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.objects, bucket+"/"+key)
	return nil
}

func (f *fakeObjectAPI) PublicURL(bucket, key string) string {
	return fmt.Sprintf("https://cdn.test/%s/%s", bucket, key)
}

func (f *fakeObjectAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

type fakeProjectStore struct {
	projects    []*models.Project
	addErr      error
	reorderFail []database.ReorderFailure
}

func (f *fakeProjectStore) FindAll() ([]*models.Project, error) {
	return f.projects, nil
}

func (f *fakeProjectStore) FindByID(id uuid.UUID) (*models.Project, error) {
	for _, p := range f.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProjectStore) Add(project *models.Project) error {
	if f.addErr != nil {
		return f.addErr
	}
	project.ID = uuid.New()
	project.OrderPosition = len(f.projects)
	f.projects = append(f.projects, project)
	return nil
}

func (f *fakeProjectStore) Delete(id uuid.UUID) error {
	for i, p := range f.projects {
		if p.ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeProjectStore) Reorder(_ context.Context, ids []uuid.UUID) (int, []database.ReorderFailure) {
	if len(f.reorderFail) > 0 {
		return len(ids) - len(f.reorderFail), f.reorderFail
	}
	for pos, id := range ids {
		for _, p := range f.projects {
			if p.ID == id {
				p.OrderPosition = pos
			}
		}
	}
	return len(ids), nil
}

type fakeHeroStore struct {
	slots       []*models.HeroSlot
	replaceErr  error
	replaceCall int
}

func (f *fakeHeroStore) FindAll() ([]*models.HeroSlot, error) {
	return f.slots, nil
}

func (f *fakeHeroStore) ReplaceAll(slots []*models.HeroSlot) error {
	f.replaceCall++
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.slots = slots
	return nil
}

func (f *fakeHeroStore) DeleteAll() error {
	f.slots = nil
	return nil
}

type fakeCategoryStore struct {
	categories []*models.ServiceCategory
	setCalls   int
	setErr     error
}

func (f *fakeCategoryStore) FindAll() ([]*models.ServiceCategory, error) {
	return f.categories, nil
}

func (f *fakeCategoryStore) FindBySlug(slug string) (*models.ServiceCategory, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategoryStore) SetImages(slug string, images []string) error {
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	for _, c := range f.categories {
		if c.Slug == slug {
			c.Images = images
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeContactStore struct {
	submissions []*models.ContactSubmission
	addErr      error
}

func (f *fakeContactStore) Add(submission *models.ContactSubmission) error {
	if f.addErr != nil {
		return f.addErr
	}
	submission.ID = uuid.New()
	f.submissions = append(f.submissions, submission)
	return nil
}

func (f *fakeContactStore) FindAll() ([]*models.ContactSubmission, error) {
	return f.submissions, nil
}

func (f *fakeContactStore) Delete(id uuid.UUID) error {
	for i, s := range f.submissions {
		if s.ID == id {
			f.submissions = append(f.submissions[:i], f.submissions[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeMailer struct {
	mu      sync.Mutex
	sent    []string
	sendErr error
}

func (f *fakeMailer) Send(_ context.Context, subject, _ string, _ []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, subject)
	return f.sendErr
}

type fakeBookingStore struct {
	bookings []*models.Booking
	addErr   error
}

func (f *fakeBookingStore) Add(booking *models.Booking) error {
	if f.addErr != nil {
		return f.addErr
	}
	booking.ID = uuid.New()
	f.bookings = append(f.bookings, booking)
	return nil
}

func (f *fakeBookingStore) FindAll() ([]*models.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBookingStore) Delete(id uuid.UUID) error {
	for i, b := range f.bookings {
		if b.ID == id {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeBookingStore) DeleteMany(ids []uuid.UUID) (int, map[uuid.UUID]string) {
	failed := make(map[uuid.UUID]string)
	deleted := 0
	for _, id := range ids {
		if err := f.Delete(id); err != nil {
			failed[id] = err.Error()
			continue
		}
		deleted++
	}
	return deleted, failed
}

// fakeVideoStore serves objects from memory for the byte server tests.
type fakeVideoStore struct {
	objects map[string][]byte
}

func (f *fakeVideoStore) Exists(_ context.Context, _, key string) (bool, error) {
	_, ok := f.objects[key]
	return ok, nil
}

func (f *fakeVideoStore) Get(_ context.Context, _, key string) ([]byte, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("object %s missing", key)
	}
	return data, nil
}
