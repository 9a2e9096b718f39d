package repository

import (
	"context"

	"github.com/meinhoongagan/servicehub/models"
	"gorm.io/gorm"
)

type FileRemovalRepository struct {
	db *gorm.DB
}

func NewFileRemovalRepository(db *gorm.DB) *FileRemovalRepository {
	return &FileRemovalRepository{db: db}
}

// Mark records refs as files waiting to be removed.
func (r *FileRemovalRepository) Mark(ctx context.Context, refs []string) ([]models.FileRemoval, error) {
	marks := make([]models.FileRemoval, 0, len(refs))
	for _, ref := range refs {
		if ref != "" {
			marks = append(marks, models.FileRemoval{Ref: ref})
		}
	}
	if len(marks) == 0 {
		return marks, nil
	}
	if err := r.db.WithContext(ctx).Create(&marks).Error; err != nil {
		return nil, err
	}
	return marks, nil
}

// Pending returns up to limit markers, least-attempted first.
func (r *FileRemovalRepository) Pending(ctx context.Context, limit int) ([]models.FileRemoval, error) {
	var marks []models.FileRemoval
	err := r.db.WithContext(ctx).
		Order("attempts asc").
		Order("id asc").
		Limit(limit).
		Find(&marks).Error
	return marks, err
}

// Done clears a marker once its file is gone.
func (r *FileRemovalRepository) Done(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.FileRemoval{}, id).Error
}

// Failed records an unsuccessful removal attempt.
func (r *FileRemovalRepository) Failed(ctx context.Context, id uint, cause error) error {
	return r.db.WithContext(ctx).Model(&models.FileRemoval{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": cause.Error(),
		}).Error
}

func (r *FileRemovalRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.FileRemoval{}).Count(&n).Error
	return n, err
}
