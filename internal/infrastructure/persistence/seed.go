package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/salesorder/backend/internal/domain/catalog"
	"github.com/salesorder/backend/internal/domain/shared/valueobject"
	"github.com/salesorder/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type seedClient struct {
	name, address1, address2, state, postCode string
}

type seedItem struct {
	code, description, price string
}

var demoClients = []seedClient{
	{"ABC Corporation", "123 Main St", "Suite 100", "NY", "10001"},
	{"XYZ Industries", "456 Oak Ave", "Floor 5", "CA", "90001"},
	{"Tech Solutions Ltd", "789 Tech Blvd", "Building A", "CA", "94102"},
	{"Global Trading Inc", "321 Commerce St", "Unit 200", "IL", "60601"},
}

var demoItems = []seedItem{
	{"ITEM001", "Laptop Computer", "999.99"},
	{"ITEM002", "Wireless Mouse", "29.99"},
	{"ITEM003", "Mechanical Keyboard", "149.99"},
	{"ITEM004", "Monitor 27 inch", "299.99"},
	{"ITEM005", "USB-C Cable", "19.99"},
	{"ITEM006", "Webcam HD", "79.99"},
	{"ITEM007", "Headphones", "89.99"},
	{"ITEM008", "External Hard Drive 1TB", "59.99"},
}

// SeedCatalog inserts the demo clients and items when both tables are empty.
// It reports whether anything was written.
func SeedCatalog(ctx context.Context, db *gorm.DB) (bool, error) {
	seeded := false

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var clients, items int64
		if err := tx.Model(&models.ClientModel{}).Count(&clients).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.ItemModel{}).Count(&items).Error; err != nil {
			return err
		}
		if clients > 0 || items > 0 {
			return nil
		}

		now := time.Now().UTC()
		clientRows := make([]*models.ClientModel, 0, len(demoClients))
		for _, c := range demoClients {
			client, err := catalog.NewClient(c.name, valueobject.NewAddress(c.address1, c.address2, "", c.state, c.postCode), now)
			if err != nil {
				return err
			}
			clientRows = append(clientRows, models.ClientModelFromDomain(client))
		}

		itemRows := make([]*models.ItemModel, 0, len(demoItems))
		for _, it := range demoItems {
			item, err := catalog.NewItem(it.code, it.description, decimal.RequireFromString(it.price), now)
			if err != nil {
				return err
			}
			itemRows = append(itemRows, models.ItemModelFromDomain(item))
		}

		if err := tx.Create(&clientRows).Error; err != nil {
			return err
		}
		if err := tx.Create(&itemRows).Error; err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seed catalog: %w", err)
	}
	return seeded, nil
}
