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
	"github.com/quickbite/storefront/models"
)

const recentCompletedLimit = 10

// Dashboard handles GET /dashboard (staff only): pending and preparing
// orders oldest first for first-in-first-out triage, plus the ten most
// recently completed.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	pending, err := dbhelper.ListOrdersByStatus(r.Context(), models.StatusPending)
	if err != nil {
		http.Error(w, "failed to query pending orders", http.StatusInternalServerError)
		return
	}

	preparing, err := dbhelper.ListOrdersByStatus(r.Context(), models.StatusPreparing)
	if err != nil {
		http.Error(w, "failed to query preparing orders", http.StatusInternalServerError)
		return
	}

	completed, err := dbhelper.RecentCompletedOrders(r.Context(), recentCompletedLimit)
	if err != nil {
		http.Error(w, "failed to query completed orders", http.StatusInternalServerError)
		return
	}

	if pending == nil {
		pending = []models.Order{}
	}
	if preparing == nil {
		preparing = []models.Order{}
	}
	if completed == nil {
		completed = []models.Order{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"pending_orders":   pending,
		"preparing_orders": preparing,
		"recent_completed": completed,
	})
}

// UpdateOrderStatus handles POST /dashboard/orders/{id}/status (staff
// only). Only moves allowed by the transition table go through; anything
// else is rejected.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	type request struct {
		Status models.OrderStatus `json:"status"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if !req.Status.IsValid() {
		http.Error(w, "unknown status", http.StatusBadRequest)
		return
	}

	err = dbhelper.TransitionStatus(r.Context(), orderID, req.Status)
	switch {
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, "order not found", http.StatusNotFound)
		return
	case errors.Is(err, models.ErrInvalidTransition):
		http.Error(w, "status change not allowed", http.StatusConflict)
		return
	case err != nil:
		logrus.Printf("failed to update order status, error: %v", err)
		http.Error(w, "failed to update order status", http.StatusInternalServerError)
		return
	}

	metrics.StatusTransitions.WithLabelValues(string(req.Status)).Inc()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":  "Order status updated",
		"order_id": orderID,
		"status":   req.Status,
	})
}
