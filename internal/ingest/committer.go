package ingest

import (
	"context"
	"errors"

	"github.com/adityarao/billsync-backend/pkg/db"
	"github.com/adityarao/billsync-backend/pkg/db/models"
	"github.com/adityarao/billsync-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// txRunner is the slice of db.Client the committer needs.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

var _ txRunner = (*db.Client)(nil)

// Committer persists one order aggregate per transaction. Everything an order
// touches, the customer merge, new catalog entries, the order row and its
// items, commits or rolls back together.
type Committer struct {
	runner txRunner
	repo   Repository
}

func NewCommitter(runner txRunner, repo Repository) *Committer {
	return &Committer{runner: runner, repo: repo}
}

// Commit writes the aggregate atomically and reports how the order ended up.
// A bill number that already exists rolls back untouched and comes back as
// skipped; any other failure rolls back and comes back as failed with the
// cause.
func (c *Committer) Commit(ctx context.Context, agg *OrderAggregate) (enums.OrderOutcome, error) {
	err := c.runner.WithTx(ctx, func(tx *gorm.DB) error {
		repo := c.repo.WithTx(tx)

		customer, err := resolveCustomer(ctx, repo, agg.Contact)
		if err != nil {
			return err
		}

		exists, err := repo.OrderExists(ctx, agg.BillNumber)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateOrder
		}

		order := &models.Order{
			BillNumber:     agg.BillNumber,
			OrderNumber:    orPlaceholder(agg.OrderNumber),
			OrderDate:      orPlaceholder(agg.OrderDate),
			PaymentMethod:  orPlaceholder(agg.PaymentMethod),
			TransactionRef: orPlaceholder(agg.TransactionRef),
			Discount:       parseAmount(agg.Discount),
			Subtotal:       parseAmount(agg.Subtotal),
			TaxTotal:       parseAmount(agg.TaxTotal),
			GrandTotal:     parseAmount(agg.GrandTotal),
			CustomerID:     customer.ID,
		}
		if err := repo.CreateOrder(ctx, order); err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(agg.Items))
		for _, line := range agg.Items {
			product, err := resolveProduct(ctx, repo, line)
			if err != nil {
				return err
			}
			items = append(items, models.OrderItem{
				OrderID:        order.ID,
				ProductID:      product.ID,
				ExternalItemID: orPlaceholder(line.ExternalItemID),
				Quantity:       parseQuantity(line.Quantity),
				UnitCost:       parseAmount(line.UnitCost),
				TaxRate:        parseAmount(line.TaxRate),
				TaxAmount:      parseAmount(line.TaxAmount),
			})
		}
		return repo.CreateOrderItems(ctx, items)
	})

	switch {
	case err == nil:
		return enums.OrderOutcomeInserted, nil
	case errors.Is(err, ErrDuplicateOrder):
		return enums.OrderOutcomeSkipped, nil
	case db.IsUniqueViolation(err, "orders_bill_number_key"):
		// lost the insert race to a concurrent run
		return enums.OrderOutcomeSkipped, nil
	default:
		return enums.OrderOutcomeFailed, err
	}
}

// parseAmount coerces a raw money cell. Unparseable or empty values become
// zero rather than failing the order.
func parseAmount(raw string) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseQuantity(raw string) int {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0
	}
	return int(d.IntPart())
}
