package repository

import (
	"context"

	"gorm.io/gorm"
)

// query builds a fresh statement. Count and Find each need their own, since
// a counted statement cannot be reused with preloads.
type query func() *gorm.DB

func paginate[T any](count, find query, p Page) (Paginated[T], error) {
	var total int64
	if err := count().Count(&total).Error; err != nil {
		return Paginated[T]{}, err
	}

	var rows []T
	if err := p.apply(find()).Find(&rows).Error; err != nil {
		return Paginated[T]{}, err
	}
	return NewPaginated(rows, total, p), nil
}

func getByID[T any](ctx context.Context, db *gorm.DB, what string, id uint) (*T, error) {
	var row T
	if err := db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, wrapNotFound(err, what, id)
	}
	return &row, nil
}

// updateByID merges fields into the row and returns the stored result.
// Keys are column names.
func updateByID[T any](ctx context.Context, db *gorm.DB, what string, id uint, fields map[string]interface{}) (*T, error) {
	current, err := getByID[T](ctx, db, what, id)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := db.WithContext(ctx).Model(current).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return getByID[T](ctx, db, what, id)
}

func deleteByID[T any](ctx context.Context, db *gorm.DB, what string, id uint) error {
	res := db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return wrapNotFound(gorm.ErrRecordNotFound, what, id)
	}
	return nil
}
