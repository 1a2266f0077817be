// Package httphandler implements the JSON API driving adapter.
package httphandler

import (
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/ericfisherdev/academia/internal/adapter/driving/session"
	"github.com/ericfisherdev/academia/internal/adapter/driving/upload"
	"github.com/ericfisherdev/academia/internal/application"
	"github.com/ericfisherdev/academia/internal/domain/model"
)

// maxJSONBody bounds JSON request bodies.
const maxJSONBody = 1 << 20

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	svc    application.Services
	logger *slog.Logger
}

// NewHandler creates a Handler over the given services.
func NewHandler(svc application.Services, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// RegisterAPIRoutes registers all /api/v1 routes on mux. Routes that do work
// on behalf of a client go through rl when it is non-nil.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler, rl *RateLimiter) {
	limit := func(next http.HandlerFunc) http.Handler {
		if rl == nil {
			return next
		}
		return rl.Middleware(next)
	}

	mux.Handle("POST /api/v1/auth/signup", limit(h.Signup))
	mux.Handle("POST /api/v1/auth/login", limit(h.Login))
	mux.HandleFunc("POST /api/v1/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/v1/session", requireSession(h.Session))

	mux.Handle("POST /api/v1/queries", limit(requireSession(h.SubmitQuery)))
	mux.HandleFunc("GET /api/v1/history", requireSession(h.ListHistory))
	mux.HandleFunc("GET /api/v1/history/{index}/text", requireSession(h.HistoryText))

	mux.HandleFunc("GET /api/v1/credentials", requireSession(h.ListCredentials))
	mux.Handle("PUT /api/v1/credentials/{key}", limit(requireSession(h.SetCredential)))

	mux.HandleFunc("GET /api/v1/languages", requireSession(h.ListLanguages))
	mux.Handle("POST /api/v1/translations", limit(requireSession(h.Translate)))

	mux.HandleFunc("GET /api/v1/health", h.Health)
}

// Signup registers an account and starts a session for it.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.svc.Accounts.Register(r.Context(), req.Username, req.Password, req.Confirmation)
	if err != nil {
		writeServiceError(w, h.logger, "signup", err)
		return
	}

	h.startSession(w, http.StatusCreated, user)
}

// Login verifies credentials and starts a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.svc.Accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, h.logger, "login", err)
		return
	}

	h.startSession(w, http.StatusOK, user)
}

// Logout clears the session cookie. Bearer tokens simply stop being sent.
func (h *Handler) Logout(w http.ResponseWriter, _ *http.Request) {
	session.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Session returns the authenticated user.
func (h *Handler) Session(w http.ResponseWriter, _ *http.Request, s model.Session) {
	writeJSON(w, http.StatusOK, toUserResponse(s))
}

// SubmitQuery dispatches a query to every provider. The body is either JSON
// or a multipart form with a "query" field and optional "images" files.
func (h *Handler) SubmitQuery(w http.ResponseWriter, r *http.Request, _ model.Session) {
	var (
		query       string
		attachments []model.Attachment
	)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := upload.ParseForm(w, r); err != nil {
			writeServiceError(w, h.logger, "parse upload", err)
			return
		}
		query = r.FormValue("query")

		var err error
		attachments, err = upload.Attachments(r.MultipartForm)
		if err != nil {
			writeServiceError(w, h.logger, "read upload", err)
			return
		}
	} else {
		var req QueryRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		query = req.Query
	}

	result, err := h.svc.Dispatch.Dispatch(r.Context(), query, attachments)
	if err != nil {
		writeServiceError(w, h.logger, "dispatch", err)
		return
	}

	writeJSON(w, http.StatusOK, toDispatchResponse(result))
}

// ListHistory returns the stored messages, newest first.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request, _ model.Session) {
	messages, err := h.svc.History.List(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, "list history", err)
		return
	}

	resp := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		resp = append(resp, toMessageResponse(m))
	}
	writeJSON(w, http.StatusOK, resp)
}

// HistoryText returns the translatable text of one history item.
func (h *Handler) HistoryText(w http.ResponseWriter, r *http.Request, _ model.Session) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid history index")
		return
	}

	text, err := h.svc.History.Select(r.Context(), index)
	if err != nil {
		writeServiceError(w, h.logger, "select history", err)
		return
	}

	writeJSON(w, http.StatusOK, HistoryTextResponse{Index: index, Text: text})
}

// ListCredentials returns the credential view. Non-admins get a restricted
// view with no entries.
func (h *Handler) ListCredentials(w http.ResponseWriter, r *http.Request, s model.Session) {
	view, err := h.svc.Credentials.View(r.Context(), s)
	if err != nil {
		writeServiceError(w, h.logger, "view credentials", err)
		return
	}
	writeJSON(w, http.StatusOK, toCredentialViewResponse(view))
}

// SetCredential stores one provider key. Admin only.
func (h *Handler) SetCredential(w http.ResponseWriter, r *http.Request, s model.Session) {
	var req CredentialRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.svc.Credentials.Set(r.Context(), s, r.PathValue("key"), req.Value); err != nil {
		writeServiceError(w, h.logger, "save credential", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListLanguages returns the translation targets.
func (h *Handler) ListLanguages(w http.ResponseWriter, _ *http.Request, _ model.Session) {
	languages := h.svc.Translation.Languages()
	resp := make([]LanguageResponse, 0, len(languages))
	for _, l := range languages {
		resp = append(resp, toLanguageResponse(l))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Translate runs the translation stub.
func (h *Handler) Translate(w http.ResponseWriter, r *http.Request, _ model.Session) {
	var req TranslationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tr, err := h.svc.Translation.Translate(r.Context(), req.Text, req.Language)
	if err != nil {
		writeServiceError(w, h.logger, "translate", err)
		return
	}

	writeJSON(w, http.StatusOK, TranslationResponse{
		Language: toLanguageResponse(tr.Language),
		Text:     tr.Text,
	})
}

// Health reports storage readiness. A degraded backend yields 503.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	report := h.svc.Health.Check(r.Context())

	status := http.StatusOK
	if report.Status != application.HealthOK {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:  report.Status,
		Storage: report.Storage,
		Error:   report.Error,
		Time:    time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) startSession(w http.ResponseWriter, status int, user model.User) {
	token, err := h.svc.Sessions.Issue(user)
	if err != nil {
		writeServiceError(w, h.logger, "issue session", err)
		return
	}

	ttl := h.svc.Sessions.TTL()
	session.SetCookie(w, token, ttl)
	writeJSON(w, status, AuthResponse{
		User:      UserResponse{Username: user.Username, IsAdmin: user.IsAdmin},
		Token:     token,
		ExpiresAt: time.Now().Add(ttl).UTC().Format(time.RFC3339),
	})
}

// decodeJSON decodes the request body into v, writing 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
