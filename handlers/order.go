package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/quickbite/storefront/database/dbhelper"
	"github.com/quickbite/storefront/metrics"
	"github.com/quickbite/storefront/middlewares"
	"github.com/quickbite/storefront/models"
	"github.com/quickbite/storefront/orders"
)

var checkoutEngine = orders.NewSQLEngine()

// Checkout handles POST /checkout: it converts the session cart into a
// persisted order. On persistence failure the cart is untouched and the
// caller gets a retry-safe generic error.
func Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID, err := middlewares.GetSessionID(r)
	if err != nil {
		http.Error(w, "no session", http.StatusBadRequest)
		return
	}

	var contact models.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	var userID *uuid.UUID
	if claims, err := middlewares.GetAuthenticatedUser(r); err == nil {
		userID = &claims.UserID
		if contact.Name == "" {
			// Pre-fill from the account, like the original checkout form.
			if name, err := dbhelper.GetUserName(r.Context(), claims.UserID); err == nil {
				contact.Name = name
			}
		}
	}

	cart, err := dbhelper.GetCart(r.Context(), sessionID)
	if err != nil {
		logrus.Printf("failed to load cart for checkout, error: %v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	order, err := checkoutEngine.Checkout(r.Context(), sessionID, cart, contact, userID)
	if err != nil {
		writeCheckoutError(w, cart, contact, err)
		return
	}

	metrics.OrdersCreated.Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":     "Order placed successfully",
		"order_id":    order.ID,
		"status":      order.Status,
		"total_price": order.TotalPrice,
	})
}

func writeCheckoutError(w http.ResponseWriter, cart *models.Cart, contact models.Contact, err error) {
	var contactErr *models.ContactError

	switch {
	case errors.Is(err, models.ErrEmptyCart):
		metrics.CheckoutFailures.WithLabelValues("empty_cart").Inc()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error":    "your cart is empty, please add items to order",
			"redirect": "/menu",
		})
	case errors.As(err, &contactErr):
		metrics.CheckoutFailures.WithLabelValues("invalid_contact").Inc()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":  "invalid contact details",
			"fields": contactErr.Fields,
		})
	default:
		metrics.CheckoutFailures.WithLabelValues("persistence").Inc()
		// Full context stays in the log; the client only sees a generic,
		// retry-safe message.
		logrus.WithError(err).WithFields(logrus.Fields{
			"contact_name":  contact.Name,
			"contact_phone": contact.Phone,
			"cart_items":    cart.Items,
			"cart_subtotal": cart.Subtotal(),
		}).Error("checkout transaction failed")
		http.Error(w, "there was an error processing your order, please try again", http.StatusInternalServerError)
	}
}

// GetOrder handles GET /orders/{id}, the post-checkout confirmation
// view. There is no ownership check: guest orders have no principal and
// the confirmation must be reachable right after an anonymous checkout.
func GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	order, err := dbhelper.GetOrderByID(r.Context(), orderID)
	if errors.Is(err, models.ErrNotFound) {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logrus.Printf("failed to fetch order, error: %v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// OrderHistory handles GET /orders/history for authenticated customers,
// newest first with nested items.
func OrderHistory(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	history, err := dbhelper.ListOrdersByUser(r.Context(), claims.UserID)
	if err != nil {
		logrus.Printf("failed to fetch order history, error: %v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if history == nil {
		history = []models.Order{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(history)
}
