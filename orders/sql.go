package orders

import (
	"context"

	"github.com/google/uuid"

	"github.com/quickbite/storefront/database/dbhelper"
	"github.com/quickbite/storefront/models"
)

type sqlCatalog struct{}

func (sqlCatalog) BulkFind(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.MenuItem, error) {
	return dbhelper.BulkFindMenuItems(ctx, ids)
}

type sqlStore struct{}

func (sqlStore) SaveOrder(ctx context.Context, order *models.Order) error {
	return dbhelper.SaveOrder(ctx, order)
}

type sqlCarts struct{}

func (sqlCarts) Clear(ctx context.Context, sessionID uuid.UUID) error {
	return dbhelper.DeleteCart(ctx, sessionID)
}

// NewSQLEngine wires the engine to the shared database.
func NewSQLEngine() *Engine {
	return NewEngine(sqlCatalog{}, sqlStore{}, sqlCarts{})
}
