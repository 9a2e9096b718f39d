package repository

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/meinhoongagan/servicehub/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) Get(ctx context.Context, id uint) (*models.User, error) {
	return getByID[models.User](ctx, r.db, "user", id)
}

// FindByEmail returns the first account registered with email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Order("id asc").
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, p Page) (Paginated[models.User], error) {
	q := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.User{}).Order("id asc")
	}
	return paginate[models.User](q, q, p)
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID[models.User](ctx, r.db, "user", id)
}

func (r *UserRepository) SetStatus(ctx context.Context, id uint, status string) (*models.User, error) {
	return updateByID[models.User](ctx, r.db, "user", id, map[string]interface{}{"status": status})
}

func (r *UserRepository) SetPassword(ctx context.Context, id uint, hash string) error {
	_, err := updateByID[models.User](ctx, r.db, "user", id, map[string]interface{}{"password": hash})
	return err
}

// Update merges fields (column names) into the user.
func (r *UserRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.User, error) {
	return updateByID[models.User](ctx, r.db, "user", id, fields)
}

// ProviderFilter narrows a provider search. String fields match exactly and
// are ignored when empty. The numeric bounds are compared against the
// leading number of the stored pricing and experience text; providers whose
// text has no leading number never match a numeric bound.
type ProviderFilter struct {
	CategoryID    *uint
	City          string
	Pricing       string
	Availability  string
	Experience    string
	MinPrice      *float64
	MaxPrice      *float64
	MinExperience *float64
}

func (f ProviderFilter) scope(q *gorm.DB) *gorm.DB {
	q = q.Where("role = ?", models.RoleServiceProvider)
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.Pricing != "" {
		q = q.Where("pricing = ?", f.Pricing)
	}
	if f.Availability != "" {
		q = q.Where("availability = ?", f.Availability)
	}
	if f.Experience != "" {
		q = q.Where("experience = ?", f.Experience)
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		q = q.Where("pricing <> ''")
	}
	if f.MinExperience != nil {
		q = q.Where("experience <> ''")
	}
	return q
}

func (f ProviderFilter) keep(u models.User) bool {
	if f.MinPrice != nil || f.MaxPrice != nil {
		price, ok := LeadingFloat(u.Pricing)
		if !ok {
			return false
		}
		if f.MinPrice != nil && price < *f.MinPrice {
			return false
		}
		if f.MaxPrice != nil && price > *f.MaxPrice {
			return false
		}
	}
	if f.MinExperience != nil {
		exp, ok := LeadingFloat(u.Experience)
		if !ok || exp < *f.MinExperience {
			return false
		}
	}
	return true
}

// Providers returns every service provider matching f, in insertion order.
func (r *UserRepository) Providers(ctx context.Context, f ProviderFilter) ([]models.User, error) {
	var users []models.User
	if err := f.scope(r.db.WithContext(ctx)).Order("id asc").Find(&users).Error; err != nil {
		return nil, err
	}

	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if f.keep(u) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *UserRepository) ListProviders(ctx context.Context, p Page) (Paginated[models.User], error) {
	q := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.User{}).
			Where("role = ?", models.RoleServiceProvider).
			Order("id asc")
	}
	return paginate[models.User](q, q, p)
}

// GetProvider returns the user only when it is a service provider.
func (r *UserRepository) GetProvider(ctx context.Context, id uint) (*models.User, error) {
	u, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.IsServiceProvider() {
		return nil, wrapNotFound(gorm.ErrRecordNotFound, "service provider", id)
	}
	return u, nil
}

// FilterValues lists the distinct values providers use for each searchable field.
type FilterValues struct {
	Cities       []string `json:"cities"`
	Pricing      []string `json:"pricing"`
	Availability []string `json:"availability"`
	Experience   []string `json:"experience"`
}

func (r *UserRepository) ProviderFilterValues(ctx context.Context) (FilterValues, error) {
	var fv FilterValues
	targets := []struct {
		column string
		dest   *[]string
	}{
		{"city", &fv.Cities},
		{"pricing", &fv.Pricing},
		{"availability", &fv.Availability},
		{"experience", &fv.Experience},
	}

	for _, t := range targets {
		err := r.db.WithContext(ctx).Model(&models.User{}).
			Where("role = ?", models.RoleServiceProvider).
			Where(t.column + " IS NOT NULL AND " + t.column + " <> ''").
			Distinct(t.column).
			Order(t.column).
			Pluck(t.column, t.dest).Error
		if err != nil {
			return FilterValues{}, err
		}
		if *t.dest == nil {
			*t.dest = []string{}
		}
	}
	return fv, nil
}

var leadingNumber = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`)

// LeadingFloat parses the number at the start of s ("12 years" -> 12).
func LeadingFloat(s string) (float64, bool) {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
