package database

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/studionord/backend/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// ReorderFailure describes one position update that did not land.
type ReorderFailure struct {
	ProjectID uuid.UUID `json:"project_id"`
	Position  int       `json:"position"`
	Error     string    `json:"error"`
}

// FindAll returns all projects sorted by their display order
func (r *ProjectRepo) FindAll() ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Order("order_position ASC").Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project at the end of the display order. The next
// position is max+1 rather than a row count so that earlier deletions never
// cause a collision; an empty collection starts at 0.
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var next int
		if err := tx.Model(&models.Project{}).
			Select("COALESCE(MAX(order_position) + 1, 0)").
			Scan(&next).Error; err != nil {
			return err
		}
		project.OrderPosition = next
		return tx.Create(project).Error
	})
}

// Update updates an existing project in the database
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project by id. Remaining positions are not compacted;
// Add tolerates the gap.
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&models.Project{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Reorder rewrites every project's order_position to its index in ids. The
// per-item updates are issued concurrently and a failing update never aborts
// its siblings; the caller gets the count of applied updates plus one failure
// record per update that missed (including ids that match no row).
func (r *ProjectRepo) Reorder(ctx context.Context, ids []uuid.UUID) (updated int, failures []ReorderFailure) {
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for position, id := range ids {
		wg.Add(1)
		go func(position int, id uuid.UUID) {
			defer wg.Done()

			res := r.db.WithContext(ctx).
				Model(&models.Project{}).
				Where("id = ?", id).
				Update("order_position", position)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case res.Error != nil:
				failures = append(failures, ReorderFailure{ProjectID: id, Position: position, Error: res.Error.Error()})
			case res.RowsAffected == 0:
				failures = append(failures, ReorderFailure{ProjectID: id, Position: position, Error: "project not found"})
			default:
				updated++
			}
		}(position, id)
	}

	wg.Wait()
	return updated, failures
}
