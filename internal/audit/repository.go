package audit

import (
	"context"

	"github.com/adityarao/billsync-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes the read side the delta audit needs.
type Repository interface {
	ListBillNumbers(ctx context.Context) ([]string, error)
}

type GormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// ListBillNumbers returns every persisted bill number in insertion order.
func (r *GormRepository) ListBillNumbers(ctx context.Context) ([]string, error) {
	var bills []string
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Order("id").
		Pluck("bill_number", &bills).
		Error
	if err != nil {
		return nil, err
	}
	return bills, nil
}
