package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/PTM-BookingService/internal/api/middleware"
)

// routeHandlers обработчики всех маршрутов API
type routeHandlers struct {
	// public
	ListTeachers      http.HandlerFunc
	GetAvailableSlots http.HandlerFunc
	CreateBooking     http.HandlerFunc
	Login             http.HandlerFunc

	// admin
	ListBookings        http.HandlerFunc
	ExportBookings      http.HandlerFunc
	GetBooking          http.HandlerFunc
	UpdateBookingStatus http.HandlerFunc
	DeleteBooking       http.HandlerFunc
	GetStats            http.HandlerFunc
}

// routerOptions зависимости middleware
type routerOptions struct {
	log         middleware.Logger
	auth        middleware.Authenticator
	metrics     middleware.HTTPMetrics // nil - метрики выключены
	metricsPath string
}

// newRouter собирает маршруты API
// Recover самый внутренний слой: запрос с паникой попадает в лог и метрики как 500
func newRouter(h routeHandlers, opts routerOptions) *mux.Router {
	r := mux.NewRouter()

	chain := []mux.MiddlewareFunc{middleware.RequestID, middleware.Logging(opts.log)}
	if opts.metrics != nil {
		chain = append(chain, middleware.MetricsMiddleware(opts.metrics))
		r.Handle(opts.metricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}
	chain = append(chain, middleware.Recover(opts.log))
	r.Use(chain...)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/teachers", h.ListTeachers).Methods(http.MethodGet)
	api.HandleFunc("/teachers/{teacherId}/available-slots", h.GetAvailableSlots).Methods(http.MethodGet)
	api.HandleFunc("/bookings", h.CreateBooking).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (HTTP Basic)
	// ============================================================

	// Авторизация на каждом маршруте, чтобы чужой метод на admin пути давал 405
	adminAuth := middleware.AdminAuth(opts.auth, opts.log)
	admin := func(path string, handler http.HandlerFunc, method string) {
		api.Handle(path, adminAuth(handler)).Methods(method)
	}

	admin("/bookings", h.ListBookings, http.MethodGet)
	admin("/bookings/export", h.ExportBookings, http.MethodGet)
	admin("/bookings/{bookingId:[0-9]+}", h.GetBooking, http.MethodGet)
	admin("/bookings/{bookingId:[0-9]+}", h.UpdateBookingStatus, http.MethodPut)
	admin("/bookings/{bookingId:[0-9]+}", h.DeleteBooking, http.MethodDelete)
	admin("/stats", h.GetStats, http.MethodGet)

	return r
}
