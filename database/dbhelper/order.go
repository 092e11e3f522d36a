package dbhelper

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/quickbite/storefront/database"
	"github.com/quickbite/storefront/models"
)

// SaveOrder writes the order row and every item row in a single
// transaction. Either the whole order commits or nothing persists.
func SaveOrder(ctx context.Context, order *models.Order) error {
	return database.Tx(func(tx *sql.Tx) error {
		var userID uuid.NullUUID
		if order.UserID != nil {
			userID = uuid.NullUUID{UUID: *order.UserID, Valid: true}
		}

		err := tx.QueryRowContext(ctx, `
			INSERT INTO orders (id, user_id, name, phone, status, total_price)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING created_at, updated_at`,
			order.ID, userID, order.Name, order.Phone, order.Status, order.TotalPrice).
			Scan(&order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return err
		}

		for _, item := range order.Items {
			var menuItemID uuid.NullUUID
			if item.MenuItemID != nil {
				menuItemID = uuid.NullUUID{UUID: *item.MenuItemID, Valid: true}
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO order_items (id, order_id, menu_item_id, name, quantity, price)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				item.ID, item.OrderID, menuItemID, item.Name, item.Quantity, item.UnitPrice)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := scanOrder(database.Storefront.QueryRowContext(ctx, `
		SELECT id, user_id, name, phone, status, total_price, created_at, updated_at
		FROM orders
		WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	orders := []models.Order{*order}
	if err := attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// ListOrdersByUser returns the caller's orders, newest first, with items
// attached.
func ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	rows, err := database.Storefront.QueryContext(ctx, `
		SELECT id, user_id, name, phone, status, total_price, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectOrders(ctx, rows)
}

// ListOrdersByStatus returns orders in one status, oldest first, for
// first-in-first-out staff triage.
func ListOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	rows, err := database.Storefront.QueryContext(ctx, `
		SELECT id, user_id, name, phone, status, total_price, created_at, updated_at
		FROM orders
		WHERE status = $1
		ORDER BY created_at ASC`, status)
	if err != nil {
		return nil, err
	}
	return collectOrders(ctx, rows)
}

// RecentCompletedOrders returns the most recently updated completed
// orders, newest first, bounded by limit.
func RecentCompletedOrders(ctx context.Context, limit int) ([]models.Order, error) {
	rows, err := database.Storefront.QueryContext(ctx, `
		SELECT id, user_id, name, phone, status, total_price, created_at, updated_at
		FROM orders
		WHERE status = $1
		ORDER BY updated_at DESC
		LIMIT $2`, models.StatusCompleted, limit)
	if err != nil {
		return nil, err
	}
	return collectOrders(ctx, rows)
}

// TransitionStatus moves an order through the status state machine. The
// update is guarded by the expected current status so concurrent staff
// actions cannot skip states.
func TransitionStatus(ctx context.Context, id uuid.UUID, to models.OrderStatus) error {
	var from models.OrderStatus
	err := database.Storefront.QueryRowContext(ctx, `
		SELECT status FROM orders WHERE id = $1`, id).Scan(&from)
	if err == sql.ErrNoRows {
		return models.ErrNotFound
	}
	if err != nil {
		return err
	}

	if !models.CanTransition(from, to) {
		return models.ErrInvalidTransition
	}

	res, err := database.Storefront.ExecContext(ctx, `
		UPDATE orders SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Someone moved the order between the read and the write.
		return models.ErrInvalidTransition
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var order models.Order
	var userID uuid.NullUUID
	err := row.Scan(&order.ID, &userID, &order.Name, &order.Phone,
		&order.Status, &order.TotalPrice, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		order.UserID = &userID.UUID
	}
	return &order, nil
}

func collectOrders(ctx context.Context, rows *sql.Rows) ([]models.Order, error) {
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachItems eagerly loads the items of every order in one query to
// avoid per-order lookups.
func attachItems(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, 0, len(orders))
	index := make(map[uuid.UUID]int, len(orders))
	for i := range orders {
		ids = append(ids, orders[i].ID.String())
		index[orders[i].ID] = i
		orders[i].Items = []models.OrderItem{}
	}

	rows, err := database.Storefront.QueryContext(ctx, `
		SELECT id, order_id, menu_item_id, name, quantity, price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		var menuItemID uuid.NullUUID
		if err := rows.Scan(&item.ID, &item.OrderID, &menuItemID,
			&item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return err
		}
		if menuItemID.Valid {
			item.MenuItemID = &menuItemID.UUID
		}
		i := index[item.OrderID]
		orders[i].Items = append(orders[i].Items, item)
	}
	return rows.Err()
}
