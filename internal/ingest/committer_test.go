package ingest

import (
	"context"
	"testing"

	"github.com/adityarao/billsync-backend/pkg/db/models"
	"github.com/adityarao/billsync-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func sampleAggregate(bill string) *OrderAggregate {
	return &OrderAggregate{
		BillNumber:  bill,
		OrderNumber: "ORD-" + bill,
		OrderDate:   "2026-08-01",
		Subtotal:    "100.00",
		TaxTotal:    "18.00",
		GrandTotal:  "118.00",
		Contact: ContactFields{
			PartyName: "Anita Sharma",
			Phone:     "+91 98765 43210",
			Email:     "anita@example.com",
		},
		Items: []LineItem{
			{
				ExternalItemID:    "ITM-1",
				ExternalProductID: "SKU-100",
				ProductName:       "Steel Bottle",
				TaxCode:           "7310",
				Quantity:          "2",
				UnitCost:          "50.00",
				TaxRate:           "18",
				TaxAmount:         "18.00",
			},
		},
	}
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestCommitInsertsOrderGraph(t *testing.T) {
	db := setupIngestTestDB(t)
	committer := newTestCommitter(db)
	ctx := context.Background()

	outcome, err := committer.Commit(ctx, sampleAggregate("INV-001"))
	require.NoError(t, err)
	assert.Equal(t, enums.OrderOutcomeInserted, outcome)

	var order models.Order
	require.NoError(t, db.First(&order, "bill_number = ?", "INV-001").Error)
	assert.Equal(t, "118", order.GrandTotal.String())
	assert.NotZero(t, order.CustomerID)

	var customer models.Customer
	require.NoError(t, db.First(&customer, "id = ?", order.CustomerID).Error)
	assert.Equal(t, "anita@example.com", customer.Email)
	assert.True(t, customer.Phones.Contains("9876543210"))

	var item models.OrderItem
	require.NoError(t, db.First(&item, "order_id = ?", order.ID).Error)
	assert.Equal(t, 2, item.Quantity)

	var product models.Product
	require.NoError(t, db.First(&product, "id = ?", item.ProductID).Error)
	assert.Equal(t, "SKU-100", product.ExternalID)
	assert.Equal(t, "Steel Bottle", product.Name)
}

func TestCommitDuplicateBillIsSkipped(t *testing.T) {
	db := setupIngestTestDB(t)
	committer := newTestCommitter(db)
	ctx := context.Background()

	outcome, err := committer.Commit(ctx, sampleAggregate("INV-002"))
	require.NoError(t, err)
	require.Equal(t, enums.OrderOutcomeInserted, outcome)

	// Rerun with different amounts: the stored order must stay untouched.
	rerun := sampleAggregate("INV-002")
	rerun.GrandTotal = "999.99"
	outcome, err = committer.Commit(ctx, rerun)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderOutcomeSkipped, outcome)

	assert.EqualValues(t, 1, countRows(t, db, &models.Order{}))
	var order models.Order
	require.NoError(t, db.First(&order, "bill_number = ?", "INV-002").Error)
	assert.Equal(t, "118", order.GrandTotal.String())
	assert.EqualValues(t, 1, countRows(t, db, &models.OrderItem{}))
}

func TestCommitFailureRollsBackWholeOrder(t *testing.T) {
	db := setupIngestTestDB(t)
	committer := newTestCommitter(db)
	ctx := context.Background()

	agg := sampleAggregate("INV-003")
	agg.Items = append(agg.Items, LineItem{ProductName: "Mystery item"})

	outcome, err := committer.Commit(ctx, agg)
	require.ErrorIs(t, err, ErrMissingProductKey)
	assert.Equal(t, enums.OrderOutcomeFailed, outcome)

	// Nothing the order touched survives, not even the resolvable product.
	assert.EqualValues(t, 0, countRows(t, db, &models.Order{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.OrderItem{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.Product{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.Customer{}))
}

func TestCommitMissingIdentityKeyFails(t *testing.T) {
	db := setupIngestTestDB(t)
	committer := newTestCommitter(db)

	agg := sampleAggregate("INV-004")
	agg.Contact.Phone = ""
	agg.Contact.Email = ""

	outcome, err := committer.Commit(context.Background(), agg)
	require.ErrorIs(t, err, ErrMissingIdentityKey)
	assert.Equal(t, enums.OrderOutcomeFailed, outcome)
	assert.EqualValues(t, 0, countRows(t, db, &models.Customer{}))
}

func TestCommitMergesCustomerByPhone(t *testing.T) {
	db := setupIngestTestDB(t)
	committer := newTestCommitter(db)
	ctx := context.Background()

	first := sampleAggregate("INV-005")
	_, err := committer.Commit(ctx, first)
	require.NoError(t, err)

	// Same phone, new email and address: merges into the existing profile.
	second := sampleAggregate("INV-006")
	second.Contact.Email = "anita.work@example.com"
	second.Contact.Address = "12 MG Road, Bengaluru"
	_, err = committer.Commit(ctx, second)
	require.NoError(t, err)

	assert.EqualValues(t, 1, countRows(t, db, &models.Customer{}))

	var customer models.Customer
	require.NoError(t, db.First(&customer).Error)
	assert.Equal(t, "anita@example.com", customer.Email)
	assert.True(t, customer.Emails.Contains("anita@example.com"))
	assert.True(t, customer.Emails.Contains("anita.work@example.com"))
	assert.Equal(t, "12 MG Road, Bengaluru", customer.Address)
}

func TestCommitPhoneMatchWinsOverEmail(t *testing.T) {
	db := setupIngestTestDB(t)
	committer := newTestCommitter(db)
	ctx := context.Background()

	byPhone := sampleAggregate("INV-007")
	byPhone.Contact.Email = "primary@example.com"
	_, err := committer.Commit(ctx, byPhone)
	require.NoError(t, err)

	byEmail := sampleAggregate("INV-008")
	byEmail.Contact.Phone = ""
	byEmail.Contact.Email = "other@example.com"
	_, err = committer.Commit(ctx, byEmail)
	require.NoError(t, err)
	assert.EqualValues(t, 2, countRows(t, db, &models.Customer{}))

	// Phone and email point at different profiles: the phone match decides.
	conflicted := sampleAggregate("INV-009")
	conflicted.Contact.Email = "other@example.com"
	_, err = committer.Commit(ctx, conflicted)
	require.NoError(t, err)
	assert.EqualValues(t, 2, countRows(t, db, &models.Customer{}))

	var winner models.Customer
	require.NoError(t, db.First(&winner, "email = ?", "primary@example.com").Error)
	assert.True(t, winner.Emails.Contains("other@example.com"))

	var orders []models.Order
	require.NoError(t, db.Order("id").Find(&orders).Error)
	require.Len(t, orders, 3)
	assert.Equal(t, winner.ID, orders[2].CustomerID)
}

func TestCommitReusesProductMaster(t *testing.T) {
	db := setupIngestTestDB(t)
	committer := newTestCommitter(db)
	ctx := context.Background()

	_, err := committer.Commit(ctx, sampleAggregate("INV-010"))
	require.NoError(t, err)

	again := sampleAggregate("INV-011")
	again.Items[0].ProductName = "Renamed Bottle"
	_, err = committer.Commit(ctx, again)
	require.NoError(t, err)

	assert.EqualValues(t, 1, countRows(t, db, &models.Product{}))
	var product models.Product
	require.NoError(t, db.First(&product).Error)
	assert.Equal(t, "Steel Bottle", product.Name)
}

func TestCommitFallsBackToItemID(t *testing.T) {
	db := setupIngestTestDB(t)
	committer := newTestCommitter(db)

	agg := sampleAggregate("INV-012")
	agg.Items[0].ExternalProductID = ""
	agg.Items[0].ProductName = ""

	outcome, err := committer.Commit(context.Background(), agg)
	require.NoError(t, err)
	require.Equal(t, enums.OrderOutcomeInserted, outcome)

	var product models.Product
	require.NoError(t, db.First(&product).Error)
	assert.Equal(t, "ITM-1", product.ExternalID)
	assert.Equal(t, models.PlaceholderValue, product.Name)
}

func TestCommitCoercesBadNumerics(t *testing.T) {
	db := setupIngestTestDB(t)
	committer := newTestCommitter(db)

	agg := sampleAggregate("INV-013")
	agg.Discount = "n/a"
	agg.Items[0].Quantity = "two"

	outcome, err := committer.Commit(context.Background(), agg)
	require.NoError(t, err)
	require.Equal(t, enums.OrderOutcomeInserted, outcome)

	var order models.Order
	require.NoError(t, db.First(&order).Error)
	assert.True(t, order.Discount.IsZero())

	var item models.OrderItem
	require.NoError(t, db.First(&item).Error)
	assert.Equal(t, 0, item.Quantity)
}
