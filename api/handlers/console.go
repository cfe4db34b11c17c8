package handlers

import (
	"net/http"

	"github.com/EO-DataHub/eodhp-admin-console/api/middleware"
	"github.com/EO-DataHub/eodhp-admin-console/api/services"
	"github.com/gorilla/mux"
)

func GetDashboard(svc *services.ConsoleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.DashboardService(w, r)
	}
}

func GetConfirm(svc *services.ConsoleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.ConfirmService(w, r)
	}
}

func SubmitAction(svc *services.ConsoleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.SubmitActionService(w, r)
	}
}

func ToggleSetting(svc *services.ConsoleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.ToggleSettingService(w, r)
	}
}

func GetStats(svc *services.ConsoleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.StatsService(w, r)
	}
}

func GetAuditEvents(svc *services.ConsoleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.AuditService(w, r)
	}
}

// RegisterRoutes mounts the console under svc.BasePath. Every route requires
// a bearer token carrying requiredRole.
func RegisterRoutes(r *mux.Router, svc *services.ConsoleService, requiredRole string) {
	// Registered before the prefix so the bare base path is not swallowed.
	r.Handle(svc.BasePath, http.RedirectHandler(svc.BasePath+"/", http.StatusMovedPermanently)).Methods(http.MethodGet)

	console := r.PathPrefix(svc.BasePath).Subrouter()

	console.Use(middleware.WithLogger)
	console.Use(middleware.JWTMiddleware)
	console.Use(middleware.RequireRole(requiredRole))

	console.HandleFunc("/", GetDashboard(svc)).Methods(http.MethodGet)
	console.HandleFunc("/confirm", GetConfirm(svc)).Methods(http.MethodGet)
	console.HandleFunc("/actions", SubmitAction(svc)).Methods(http.MethodPost)
	console.HandleFunc("/settings/{flag}/toggle", ToggleSetting(svc)).Methods(http.MethodPost)

	console.HandleFunc("/api/stats", GetStats(svc)).Methods(http.MethodGet)
	console.HandleFunc("/api/audit", GetAuditEvents(svc)).Methods(http.MethodGet)
}
