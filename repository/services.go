package repository

import (
	"context"

	"github.com/meinhoongagan/servicehub/models"
	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ServiceRepository) Get(ctx context.Context, id uint) (*models.Service, error) {
	return getByID[models.Service](ctx, r.db, "service", id)
}

// Detail returns the service with its category left-joined.
func (r *ServiceRepository) Detail(ctx context.Context, id uint) (*ServiceDetail, error) {
	var s models.Service
	if err := r.db.WithContext(ctx).Preload("Category").First(&s, id).Error; err != nil {
		return nil, wrapNotFound(err, "service", id)
	}
	return &ServiceDetail{Service: s, CategoryDetails: s.Category}, nil
}

// ListWithCategories pages through all services. categoryDetails is an empty
// list when the category is missing and a one-element list otherwise.
func (r *ServiceRepository) ListWithCategories(ctx context.Context, p Page) (Paginated[ServiceWithCategories], error) {
	count := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Service{})
	}
	find := func() *gorm.DB {
		return r.db.WithContext(ctx).Preload("Category").Order("id asc")
	}

	page, err := paginate[models.Service](count, find, p)
	if err != nil {
		return Paginated[ServiceWithCategories]{}, err
	}
	return MapPaginated(page, func(s models.Service) ServiceWithCategories {
		cats := []models.Category{}
		if s.Category != nil {
			cats = append(cats, *s.Category)
		}
		return ServiceWithCategories{Service: s, CategoryDetails: cats}
	}), nil
}

// ByCategory inner-joins category, so services are only returned while
// their category exists. An empty result is reported as ErrNotFound.
func (r *ServiceRepository) ByCategory(ctx context.Context, categoryID uint) ([]ServiceDetail, error) {
	var services []models.Service
	err := r.db.WithContext(ctx).
		Joins("JOIN categories ON categories.id = services.category_id").
		Where("services.category_id = ?", categoryID).
		Preload("Category").
		Order("services.id asc").
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, wrapNotFound(gorm.ErrRecordNotFound, "services for category", categoryID)
	}

	out := make([]ServiceDetail, 0, len(services))
	for _, s := range services {
		out = append(out, ServiceDetail{Service: s, CategoryDetails: s.Category})
	}
	return out, nil
}

func (r *ServiceRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Service, error) {
	return updateByID[models.Service](ctx, r.db, "service", id, fields)
}

// DeleteAndMark deletes the service and records each of its images as a
// pending file removal in the same transaction. The caller removes the
// files and clears the markers; whatever it cannot remove is left for the
// sweeper.
func (r *ServiceRepository) DeleteAndMark(ctx context.Context, id uint) (*models.Service, []models.FileRemoval, error) {
	var (
		svc      models.Service
		removals []models.FileRemoval
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&svc, id).Error; err != nil {
			return wrapNotFound(err, "service", id)
		}

		for _, ref := range svc.Images {
			if ref == "" {
				continue
			}
			removals = append(removals, models.FileRemoval{Ref: ref})
		}
		if len(removals) > 0 {
			if err := tx.Create(&removals).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Service{}, id).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &svc, removals, nil
}
