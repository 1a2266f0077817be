package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ericfisherdev/academia/internal/application"
	"github.com/ericfisherdev/academia/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, details ...string) {
	writeJSON(w, status, errorResponse{Error: message, Details: details})
}

// writeServiceError maps a service error to its HTTP status. Unexpected
// errors are logged and reported as 500 without detail.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, model.ErrValidation.Error(), verr.Problems...)
	case errors.Is(err, model.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, model.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		logger.Error(op+" failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// SignupRequest is the JSON body for the signup endpoint.
type SignupRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Confirmation string `json:"confirmation"`
}

// LoginRequest is the JSON body for the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// QueryRequest is the JSON body for the query endpoint.
type QueryRequest struct {
	Query string `json:"query"`
}

// CredentialRequest is the JSON body for the credential update endpoint.
type CredentialRequest struct {
	Value string `json:"value"`
}

// TranslationRequest is the JSON body for the translation endpoint.
type TranslationRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// UserResponse is the JSON representation of the authenticated user.
type UserResponse struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// AuthResponse is returned by signup and login. Token is also set as the
// session cookie.
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
}

// ProviderResultResponse is the JSON representation of one provider result.
type ProviderResultResponse struct {
	Provider string `json:"provider"`
	Content  string `json:"content"`
	HasError bool   `json:"has_error"`
}

// MessageResponse is the JSON representation of a history message.
type MessageResponse struct {
	Query     string                   `json:"query"`
	Responses []ProviderResultResponse `json:"responses"`
	Timestamp string                   `json:"timestamp"`
}

// DispatchResponse is the JSON representation of a completed query.
type DispatchResponse struct {
	Message          MessageResponse `json:"message"`
	Outcome          string          `json:"outcome"`
	ErrorCount       int             `json:"error_count"`
	Notice           string          `json:"notice"`
	TranslatableText string          `json:"translatable_text"`
}

// HistoryTextResponse is the translatable text of a history item.
type HistoryTextResponse struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// CredentialEntryResponse is one provider key in the credential view.
type CredentialEntryResponse struct {
	KeyName    string `json:"key_name"`
	Label      string `json:"label"`
	Value      string `json:"value"`
	Configured bool   `json:"configured"`
}

// CredentialViewResponse is the JSON representation of the credential view.
type CredentialViewResponse struct {
	Restricted bool                      `json:"restricted"`
	Entries    []CredentialEntryResponse `json:"entries"`
}

// LanguageResponse is the JSON representation of a translation target.
type LanguageResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// TranslationResponse is the JSON representation of a translation.
type TranslationResponse struct {
	Language LanguageResponse `json:"language"`
	Text     string           `json:"text"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	Error   string `json:"error,omitempty"`
	Time    string `json:"time"`
}

func toUserResponse(s model.Session) UserResponse {
	return UserResponse{Username: s.Username, IsAdmin: s.IsAdmin}
}

// toMessageResponse converts a domain Message to its JSON representation.
func toMessageResponse(m model.Message) MessageResponse {
	responses := make([]ProviderResultResponse, 0, len(m.Responses))
	for _, r := range m.Responses {
		responses = append(responses, ProviderResultResponse{
			Provider: string(r.Provider),
			Content:  r.Content,
			HasError: r.HasError,
		})
	}
	return MessageResponse{
		Query:     m.Query,
		Responses: responses,
		Timestamp: m.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}

func toDispatchResponse(res application.DispatchResult) DispatchResponse {
	return DispatchResponse{
		Message:          toMessageResponse(res.Message),
		Outcome:          string(res.Outcome.Kind),
		ErrorCount:       res.Outcome.ErrorCount,
		Notice:           res.Outcome.Notice(),
		TranslatableText: res.Message.DerivedText(),
	}
}

func toCredentialViewResponse(v model.CredentialView) CredentialViewResponse {
	entries := make([]CredentialEntryResponse, 0, len(v.Entries))
	for _, e := range v.Entries {
		entries = append(entries, CredentialEntryResponse{
			KeyName:    e.KeyName,
			Label:      e.Label,
			Value:      e.Value,
			Configured: e.Configured,
		})
	}
	return CredentialViewResponse{Restricted: v.Restricted, Entries: entries}
}

func toLanguageResponse(l model.Language) LanguageResponse {
	return LanguageResponse{Code: l.Code, Name: l.Name}
}
