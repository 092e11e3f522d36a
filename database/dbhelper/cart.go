package dbhelper

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/quickbite/storefront/database"
	"github.com/quickbite/storefront/models"
)

// GetCart loads the cart owned by the session. A session with no cart
// yet gets an empty one.
func GetCart(ctx context.Context, sessionID uuid.UUID) (*models.Cart, error) {
	var payload []byte
	err := database.Storefront.QueryRowContext(ctx, `
		SELECT items FROM carts WHERE session_id = $1`, sessionID).Scan(&payload)
	if err == sql.ErrNoRows {
		return &models.Cart{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []models.CartLine
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
		}
	}
	return &models.Cart{Items: items}, nil
}

func SaveCart(ctx context.Context, sessionID uuid.UUID, cart *models.Cart) error {
	payload, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	_, err = database.Storefront.ExecContext(ctx, `
		INSERT INTO carts (session_id, items, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (session_id) DO UPDATE SET
			items = $2,
			updated_at = now()`, sessionID, payload)
	return err
}

func DeleteCart(ctx context.Context, sessionID uuid.UUID) error {
	_, err := database.Storefront.ExecContext(ctx, `
		DELETE FROM carts WHERE session_id = $1`, sessionID)
	return err
}
