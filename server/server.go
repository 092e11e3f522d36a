package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"github.com/quickbite/storefront/handlers"
	"github.com/quickbite/storefront/metrics"
	"github.com/quickbite/storefront/middlewares"
	"github.com/quickbite/storefront/models"
)

type Server struct {
	Router *mux.Router
	server *http.Server
}

const (
	readTimeout       = 5 * time.Minute
	readHeaderTimeout = 30 * time.Second
	writeTimeout      = 5 * time.Minute
)

var requestsServed = atomic.NewInt64(0)

func SetupRoutes() *Server {
	router := mux.NewRouter()
	router.Use(loggingMiddleware)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"alive": true}`)
	}).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	router.HandleFunc("/register", handlers.Register).Methods("POST")
	router.HandleFunc("/refresh", handlers.RefreshToken).Methods("POST")
	router.HandleFunc("/login", handlers.Login).Methods("POST")

	// Storefront: open to guests, session-scoped cart, optional identity
	// so checkout can tag orders for logged-in customers.
	store := router.NewRoute().Subrouter()
	store.Use(middlewares.SessionMiddleware)
	store.Use(middlewares.OptionalAuthMiddleware)

	store.HandleFunc("/menu", handlers.Menu).Methods("GET")
	store.HandleFunc("/cart", handlers.ViewCart).Methods("GET")
	store.HandleFunc("/cart/add/{itemId}", handlers.AddToCart).Methods("POST")
	store.HandleFunc("/cart/remove/{itemId}", handlers.RemoveFromCart).Methods("POST")
	store.HandleFunc("/checkout", handlers.Checkout).Methods("POST")
	store.HandleFunc("/orders/{id:[0-9a-fA-F-]{36}}", handlers.GetOrder).Methods("GET")

	// Authenticated customer surface.
	authRoutes := router.NewRoute().Subrouter()
	authRoutes.Use(middlewares.AuthMiddleware)
	authRoutes.HandleFunc("/logout", handlers.Logout).Methods("POST")
	authRoutes.HandleFunc("/orders/history", handlers.OrderHistory).Methods("GET")

	// Staff dashboard.
	dashboard := router.PathPrefix("/dashboard").Subrouter()
	dashboard.Use(middlewares.AuthMiddleware)
	dashboard.Use(middlewares.RoleBasedMiddleware(models.RoleStaff, models.RoleAdmin))

	dashboard.HandleFunc("", handlers.Dashboard).Methods("GET")
	dashboard.HandleFunc("/orders/{id}/status", handlers.UpdateOrderStatus).Methods("POST")
	dashboard.HandleFunc("/categories", handlers.CreateCategory).Methods("POST")
	dashboard.HandleFunc("/menu-items", handlers.CreateMenuItem).Methods("POST")
	dashboard.HandleFunc("/menu-items/{id}/availability", handlers.SetMenuItemAvailability).Methods("PATCH")

	// Staff management is admin only.
	admin := router.PathPrefix("/dashboard/staff").Subrouter()
	admin.Use(middlewares.AuthMiddleware)
	admin.Use(middlewares.RoleBasedMiddleware(models.RoleAdmin))

	admin.HandleFunc("", handlers.CreateStaff).Methods("POST")
	admin.HandleFunc("", handlers.ListStaff).Methods("GET")

	return &Server{
		Router: router,
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logrus.WithFields(logrus.Fields{
			"method":        r.Method,
			"path":          r.URL.Path,
			"duration_ms":   time.Since(start).Milliseconds(),
			"requests_seen": requestsServed.Inc(),
		}).Debug("request completed")
	})
}

func (svr *Server) Run(port string) error {
	svr.server = &http.Server{
		Addr:              port,
		Handler:           svr.Router,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	return svr.server.ListenAndServe()
}

func (svr *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return svr.server.Shutdown(ctx)
}
