package ingest

import (
	"context"

	"github.com/adityarao/billsync-backend/pkg/db/models"
)

// resolveProduct finds or creates the catalog entry for a line item. The
// export's product identifier wins; when it is absent the line item
// identifier stands in. A line item with neither cannot be resolved.
func resolveProduct(ctx context.Context, repo Repository, item LineItem) (*models.Product, error) {
	externalID := item.ExternalProductID
	if externalID == "" {
		externalID = item.ExternalItemID
	}
	if externalID == "" {
		return nil, ErrMissingProductKey
	}

	product, err := repo.FindProductByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if product != nil {
		return product, nil
	}

	product = &models.Product{
		ExternalID: externalID,
		Name:       orPlaceholder(item.ProductName),
		TaxCode:    orPlaceholder(item.TaxCode),
	}
	if err := repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}
