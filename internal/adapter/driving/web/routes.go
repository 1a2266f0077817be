package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers all web GUI routes on the provided mux.
// Static assets are served from the embedded filesystem at /static/*.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Static assets (embedded via go:embed).
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	mux.HandleFunc("GET /login", h.LoginPage)
	mux.HandleFunc("POST /login", requireCSRF(h.Login))
	mux.HandleFunc("GET /signup", h.SignupPage)
	mux.HandleFunc("POST /signup", requireCSRF(h.Signup))
	mux.HandleFunc("POST /logout", requireCSRF(h.Logout))

	mux.HandleFunc("GET /{$}", requireSession(h.Dashboard))
	mux.HandleFunc("GET /history/{index}", requireSession(h.HistoryItem))
	// SubmitQuery checks the CSRF cookie and header before reading the body
	// and the form field once the multipart body is parsed.
	mux.HandleFunc("POST /queries", requireSession(h.SubmitQuery))
	mux.HandleFunc("POST /translate", requireCSRF(requireSession(h.Translate)))

	mux.HandleFunc("GET /settings/api-keys", requireSession(h.APIKeys))
	mux.HandleFunc("POST /settings/api-keys/{key}", requireCSRF(requireSession(h.SaveAPIKey)))
}
