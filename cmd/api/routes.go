package main

import (
	"log"
	"net/http"

	"superfamily/internal/config"
	"superfamily/internal/handlers"
	"superfamily/internal/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Static pages (dev only)
	mux.HandleFunc("/", handlers.HandleLoginPage)
	mux.HandleFunc("/login", handlers.HandleLoginPage)
	mux.HandleFunc("/register", handlers.HandleRegisterPage)
	mux.HandleFunc("/dashboard", handlers.HandleDashboardPage)
	mux.HandleFunc("/family", handlers.HandleFamilyPage)
	mux.HandleFunc("/family/join", handlers.HandleFamilyPage)

	// Health check
	mux.HandleFunc("/health", handlers.HandleHealth)

	// Public auth routes
	mux.HandleFunc("/api/auth/register", deps.AuthHandler.HandleRegister)
	mux.HandleFunc("/api/auth/login", deps.AuthHandler.HandleLogin)

	// Account
	mux.HandleFunc("/api/account/profile", deps.AccountHandler.HandleProfile)
	mux.HandleFunc("/api/account/update-profile", deps.AccountHandler.HandleUpdateProfile)
	mux.HandleFunc("/api/account/change-password", deps.AccountHandler.HandleChangePassword)
	mux.HandleFunc("/api/account/join-family", deps.AccountHandler.HandleJoinFamily)
	mux.HandleFunc("/api/account/logout", deps.AccountHandler.HandleLogout)

	// Families
	mux.HandleFunc("/api/families", deps.FamilyHandler.HandleList)
	mux.HandleFunc("/api/families/detail", deps.FamilyHandler.HandleDetail)
	mux.HandleFunc("/api/families/create", deps.FamilyHandler.HandleCreate)
	mux.HandleFunc("/api/families/update", deps.FamilyHandler.HandleUpdate)
	mux.HandleFunc("/api/families/delete", deps.FamilyHandler.HandleDelete)
	mux.HandleFunc("/api/families/generate-invite", deps.FamilyHandler.HandleGenerateInvite)

	// Categories
	mux.HandleFunc("/api/categories", deps.CategoryHandler.HandleList)
	mux.HandleFunc("/api/categories/create", deps.CategoryHandler.HandleCreate)
	mux.HandleFunc("/api/categories/update", deps.CategoryHandler.HandleUpdate)
	mux.HandleFunc("/api/categories/delete", deps.CategoryHandler.HandleDelete)

	// Transactions
	mux.HandleFunc("/api/transactions", deps.TransactionHandler.HandleList)
	mux.HandleFunc("/api/transactions/detail", deps.TransactionHandler.HandleDetail)
	mux.HandleFunc("/api/transactions/create", deps.TransactionHandler.HandleCreate)
	mux.HandleFunc("/api/transactions/update", deps.TransactionHandler.HandleUpdate)
	mux.HandleFunc("/api/transactions/delete", deps.TransactionHandler.HandleDelete)

	// Dashboard
	mux.HandleFunc("/api/dashboard/statistics", deps.DashboardHandler.HandleStatistics)

	// The gate runs ahead of the mux so every route, page or API, passes
	// through the same decision table.
	gate := middleware.Gate(deps.JWT, middleware.DefaultGateConfig())
	handler := gate(mux)

	handler = middleware.Tracing(handler)
	handler = middleware.Telemetry(handler)

	// Apply global middleware
	handler = middleware.Logging(middleware.CORS(handler))

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		log.Println("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
