package repository

import (
	"context"

	"github.com/meinhoongagan/servicehub/models"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CategoryRepository) Get(ctx context.Context, id uint) (*models.Category, error) {
	return getByID[models.Category](ctx, r.db, "category", id)
}

func (r *CategoryRepository) List(ctx context.Context, p Page) (Paginated[models.Category], error) {
	q := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Category{}).Order("id asc")
	}
	return paginate[models.Category](q, q, p)
}

func (r *CategoryRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Category, error) {
	return updateByID[models.Category](ctx, r.db, "category", id, fields)
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID[models.Category](ctx, r.db, "category", id)
}
