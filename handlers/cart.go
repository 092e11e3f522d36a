package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/quickbite/storefront/database/dbhelper"
	"github.com/quickbite/storefront/middlewares"
	"github.com/quickbite/storefront/models"
)

// AddToCart handles POST /cart/add/{itemId}.
func AddToCart(w http.ResponseWriter, r *http.Request) {
	sessionID, err := middlewares.GetSessionID(r)
	if err != nil {
		http.Error(w, "no session", http.StatusBadRequest)
		return
	}

	itemID, err := uuid.Parse(mux.Vars(r)["itemId"])
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	item, err := dbhelper.FindAvailableItem(r.Context(), itemID)
	if errors.Is(err, models.ErrNotFound) {
		http.Error(w, "menu item not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logrus.Printf("failed to look up menu item, error: %v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	cart, err := dbhelper.GetCart(r.Context(), sessionID)
	if err != nil {
		logrus.Printf("failed to load cart, error: %v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	cart.Add(item)

	if err := dbhelper.SaveCart(r.Context(), sessionID, cart); err != nil {
		logrus.Printf("failed to save cart, error: %v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":    fmt.Sprintf("Added %s to your cart", item.Name),
		"cart_count": cart.ItemCount(),
	})
}

// RemoveFromCart handles POST /cart/remove/{itemId}. Removing an item
// that is not in the cart is a no-op.
func RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	sessionID, err := middlewares.GetSessionID(r)
	if err != nil {
		http.Error(w, "no session", http.StatusBadRequest)
		return
	}

	itemID, err := uuid.Parse(mux.Vars(r)["itemId"])
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	cart, err := dbhelper.GetCart(r.Context(), sessionID)
	if err != nil {
		logrus.Printf("failed to load cart, error: %v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	cart.Remove(itemID)

	if err := dbhelper.SaveCart(r.Context(), sessionID, cart); err != nil {
		logrus.Printf("failed to save cart, error: %v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":    "Item removed",
		"cart_count": cart.ItemCount(),
	})
}

// ViewCart handles GET /cart.
func ViewCart(w http.ResponseWriter, r *http.Request) {
	sessionID, err := middlewares.GetSessionID(r)
	if err != nil {
		http.Error(w, "no session", http.StatusBadRequest)
		return
	}

	cart, err := dbhelper.GetCart(r.Context(), sessionID)
	if err != nil {
		logrus.Printf("failed to load cart, error: %v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"items":      cart.View(),
		"subtotal":   cart.Subtotal(),
		"cart_count": cart.ItemCount(),
	})
}
