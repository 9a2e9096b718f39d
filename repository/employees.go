package repository

import (
	"context"

	"github.com/meinhoongagan/servicehub/models"
	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *models.Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EmployeeRepository) List(ctx context.Context, p Page) (Paginated[models.Employee], error) {
	q := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Employee{}).Order("id asc")
	}
	return paginate[models.Employee](q, q, p)
}
