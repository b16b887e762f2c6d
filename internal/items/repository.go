// Package items owns persistence for the primary entity.
package items

import (
	"context"
	"log"

	"gorm.io/gorm"

	"itemtrail/internal/models"
)

// Repository runs each operation in its own session scope; nothing holds a
// connection across calls.
type Repository struct {
	db     *gorm.DB
	logger *log.Logger
}

func NewRepository(db *gorm.DB, logger *log.Logger) *Repository {
	if logger == nil {
		logger = log.Default()
	}
	return &Repository{db: db, logger: logger}
}

// Create inserts an item inside an explicit transaction so the id is assigned
// before the transaction finalizes. A commit failure is logged and tolerated:
// the caller gets the best-known in-memory state, with the documented risk
// that the row may not have persisted durably. A failed post-commit re-read
// likewise degrades to the local construction.
func (r *Repository) Create(ctx context.Context, name string) (*models.Item, error) {
	item := &models.Item{Name: name}

	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	if err := tx.Create(item).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	// id is available here, before commit
	if err := tx.Commit().Error; err != nil {
		r.logger.Printf("error committing transaction for item %d: %v", item.ID, err)
	}

	fresh := &models.Item{}
	if err := r.db.WithContext(ctx).First(fresh, item.ID).Error; err != nil {
		r.logger.Printf("could not re-read item id=%d after commit: %v", item.ID, err)
		return item, nil
	}
	return fresh, nil
}

// List returns all items in natural storage order.
func (r *Repository) List(ctx context.Context) ([]models.Item, error) {
	var out []models.Item
	if err := r.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
