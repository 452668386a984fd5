package handlers

import (
	"net/http"

	"superfamily/internal/web"
)

// HandleHealth returns a simple health check response.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// HandleLoginPage serves the login page.
// Dev only - static HTML file serving.
func HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, web.FS, "login.html")
}

// HandleRegisterPage serves the registration page.
// Dev only - static HTML file serving.
func HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, web.FS, "register.html")
}

// HandleDashboardPage serves the dashboard page.
// Dev only - static HTML file serving.
func HandleDashboardPage(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, web.FS, "dashboard.html")
}

// HandleFamilyPage serves the family page, which also redeems invite links.
// Dev only - static HTML file serving.
func HandleFamilyPage(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, web.FS, "family.html")
}
