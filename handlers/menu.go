package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/quickbite/storefront/database/dbhelper"
	"github.com/quickbite/storefront/middlewares"
	"github.com/quickbite/storefront/models"
)

// Menu handles GET /menu: available items grouped by active category,
// plus the caller's cart badge count.
func Menu(w http.ResponseWriter, r *http.Request) {
	type categorySection struct {
		models.Category
		Items []models.MenuItem `json:"items"`
	}

	categories, err := dbhelper.ListActiveCategories(r.Context())
	if err != nil {
		http.Error(w, "failed to query categories", http.StatusInternalServerError)
		return
	}

	items, err := dbhelper.ListAvailableMenuItems(r.Context())
	if err != nil {
		http.Error(w, "failed to query menu items", http.StatusInternalServerError)
		return
	}

	sections := make([]categorySection, 0, len(categories))
	for _, category := range categories {
		section := categorySection{Category: category, Items: []models.MenuItem{}}
		for _, item := range items {
			if item.CategoryID == category.ID {
				section.Items = append(section.Items, item)
			}
		}
		sections = append(sections, section)
	}

	cartCount := 0
	if sessionID, err := middlewares.GetSessionID(r); err == nil {
		if cart, err := dbhelper.GetCart(r.Context(), sessionID); err == nil {
			cartCount = cart.ItemCount()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"menu":       sections,
		"cart_count": cartCount,
	})
}

// CreateCategory handles POST /dashboard/categories (staff only).
func CreateCategory(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Slug == "" {
		http.Error(w, "name and slug are required", http.StatusBadRequest)
		return
	}

	id, err := dbhelper.CreateCategory(r.Context(), req.Name, req.Slug)
	if err != nil {
		logrus.Printf("failed to create category, error: %v", err)
		http.Error(w, "failed to create category", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message":     "Category created",
		"category_id": id.String(),
	})
}

// CreateMenuItem handles POST /dashboard/menu-items (staff only).
func CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	type request struct {
		CategoryID  uuid.UUID       `json:"category_id"`
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Price       decimal.Decimal `json:"price"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.CategoryID == uuid.Nil {
		http.Error(w, "name and category_id are required", http.StatusBadRequest)
		return
	}
	if req.Price.IsNegative() {
		http.Error(w, "price must not be negative", http.StatusBadRequest)
		return
	}

	id, err := dbhelper.CreateMenuItem(r.Context(), req.CategoryID, req.Name, req.Description, req.Price)
	if err != nil {
		logrus.Printf("failed to create menu item, error: %v", err)
		http.Error(w, "failed to create menu item", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message":      "Menu item created",
		"menu_item_id": id.String(),
	})
}

// SetMenuItemAvailability handles PATCH
// /dashboard/menu-items/{id}/availability (staff only). Orders keep
// their price snapshots, so toggling or deleting items never rewrites
// history.
func SetMenuItemAvailability(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	type request struct {
		IsAvailable bool `json:"is_available"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	err = dbhelper.SetMenuItemAvailability(r.Context(), itemID, req.IsAvailable)
	if errors.Is(err, models.ErrNotFound) {
		http.Error(w, "menu item not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "failed to update menu item", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":      "Menu item updated",
		"is_available": req.IsAvailable,
	})
}
