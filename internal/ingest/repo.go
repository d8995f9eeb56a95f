package ingest

import (
	"context"
	"errors"

	"github.com/adityarao/billsync-backend/pkg/db/models"
	"github.com/adityarao/billsync-backend/pkg/enums"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the persistence operations the ingestion pipeline needs.
// Every method runs against the bound *gorm.DB, which may be a transaction.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	FindCustomerByContact(ctx context.Context, kind enums.ContactKind, value string) (*models.Customer, error)
	FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	SaveCustomer(ctx context.Context, customer *models.Customer) error
	IndexContact(ctx context.Context, customerID int64, kind enums.ContactKind, value string) error

	FindProductByExternalID(ctx context.Context, externalID string) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error

	OrderExists(ctx context.Context, billNumber string) (bool, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
}

// GormRepository is the gorm-backed Repository used in production and tests.
type GormRepository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *GormRepository) WithTx(tx *gorm.DB) Repository {
	return &GormRepository{db: tx}
}

// FindCustomerByContact resolves a customer through the contact index. A miss
// returns (nil, nil).
func (r *GormRepository) FindCustomerByContact(ctx context.Context, kind enums.ContactKind, value string) (*models.Customer, error) {
	var contact models.CustomerContact
	err := r.db.WithContext(ctx).
		Where("kind = ? AND value = ?", kind, value).
		First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", contact.CustomerID).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindCustomerByEmail matches on the immutable primary email column only.
func (r *GormRepository) FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).First(&customer, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *GormRepository) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *GormRepository) SaveCustomer(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// IndexContact adds a (kind, value) lookup row for the customer. A value
// already indexed, for this or any other customer, is left untouched so the
// first owner keeps winning lookups.
func (r *GormRepository) IndexContact(ctx context.Context, customerID int64, kind enums.ContactKind, value string) error {
	contact := models.CustomerContact{CustomerID: customerID, Kind: kind, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&contact).Error
}

func (r *GormRepository) FindProductByExternalID(ctx context.Context, externalID string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, "external_id = ?", externalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *GormRepository) OrderExists(ctx context.Context, billNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("bill_number = ?", billNumber).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *GormRepository) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}
