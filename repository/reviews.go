package repository

import (
	"context"

	"github.com/meinhoongagan/servicehub/models"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *models.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReviewRepository) SetStatus(ctx context.Context, id uint, status string) (*models.Review, error) {
	return updateByID[models.Review](ctx, r.db, "review", id, map[string]interface{}{"status": status})
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID[models.Review](ctx, r.db, "review", id)
}

// ReviewFilter selects reviews and decides which user references are
// joined. The appointment is always joined in full; joined users carry only
// name and email (plus phone for the provider).
type ReviewFilter struct {
	ClientID          uint
	ServiceProviderID uint
	Status            string

	WithClient   bool
	WithProvider bool
}

func (f ReviewFilter) scope(q *gorm.DB) *gorm.DB {
	if f.ClientID != 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.ServiceProviderID != 0 {
		q = q.Where("service_provider_id = ?", f.ServiceProviderID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

func (r *ReviewRepository) Details(ctx context.Context, f ReviewFilter, p Page) (Paginated[ReviewDetail], error) {
	count := func() *gorm.DB {
		return f.scope(r.db.WithContext(ctx).Model(&models.Review{}))
	}
	find := func() *gorm.DB {
		q := f.scope(r.db.WithContext(ctx)).Preload("Appointment").Order("id asc")
		if f.WithClient {
			q = q.Preload("Client", func(db *gorm.DB) *gorm.DB {
				return db.Select("id", "name", "email")
			})
		}
		if f.WithProvider {
			q = q.Preload("ServiceProvider", func(db *gorm.DB) *gorm.DB {
				return db.Select("id", "name", "email", "phone")
			})
		}
		return q
	}

	page, err := paginate[models.Review](count, find, p)
	if err != nil {
		return Paginated[ReviewDetail]{}, err
	}
	return MapPaginated(page, func(rv models.Review) ReviewDetail {
		d := ReviewDetail{
			Review:          rv,
			Client:          rv.ClientID,
			Appointment:     nullable(rv.Appointment),
			ServiceProvider: rv.ServiceProviderID,
		}
		if f.WithClient {
			d.Client = nullable(summarize(rv.Client))
		}
		if f.WithProvider {
			d.ServiceProvider = nullable(summarize(rv.ServiceProvider))
		}
		return d
	}), nil
}
