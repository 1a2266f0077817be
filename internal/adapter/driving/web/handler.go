// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/academia/internal/adapter/driving/session"
	"github.com/ericfisherdev/academia/internal/adapter/driving/upload"
	"github.com/ericfisherdev/academia/internal/adapter/driving/web/templates"
	"github.com/ericfisherdev/academia/internal/adapter/driving/web/templates/pages"
	vm "github.com/ericfisherdev/academia/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/academia/internal/application"
	"github.com/ericfisherdev/academia/internal/domain/model"
)

const pageTitle = "Academia"

// Handler is the web GUI driving adapter that serves HTML via templ components.
type Handler struct {
	svc    application.Services
	logger *slog.Logger
}

// NewHandler creates a Handler over the given services.
func NewHandler(svc application.Services, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// sessionHandlerFunc is a page handler that runs only for signed-in users.
type sessionHandlerFunc func(w http.ResponseWriter, r *http.Request, s model.Session)

// requireSession redirects anonymous visitors to the login page.
func requireSession(next sessionHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := session.FromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r, s)
	}
}

// requireCSRF rejects form posts whose CSRF token does not match the cookie.
func requireCSRF(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !validateCSRF(r) {
			http.Error(w, "invalid CSRF token", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

// LoginPage renders the login form.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := session.FromContext(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, pages.AuthPage(vm.AuthViewModel{CSRFToken: csrfToken(w, r)}))
}

// SignupPage renders the signup form.
func (h *Handler) SignupPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := session.FromContext(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, pages.AuthPage(vm.AuthViewModel{Signup: true, CSRFToken: csrfToken(w, r)}))
}

// Login signs the user in and redirects to the dashboard.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	user, err := h.svc.Accounts.Login(r.Context(), username, r.FormValue("password"))
	if err != nil {
		h.authFailure(w, r, false, username, err)
		return
	}
	h.startSession(w, r, user)
}

// Signup registers an account, signs it in and redirects to the dashboard.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	user, err := h.svc.Accounts.Register(r.Context(), username, r.FormValue("password"), r.FormValue("confirmation"))
	if err != nil {
		h.authFailure(w, r, true, username, err)
		return
	}
	h.startSession(w, r, user)
}

// Logout clears the session and returns to the login page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session.ClearCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Dashboard renders the query page with no answer selected.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request, s model.Session) {
	h.renderDashboard(w, r, s, dashboardState{selected: -1})
}

// HistoryItem shows a stored answer and offers it for translation.
func (h *Handler) HistoryItem(w http.ResponseWriter, r *http.Request, s model.Session) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		index = -1
	}

	msg, err := h.svc.History.Get(r.Context(), index)
	if err != nil {
		notice, status := h.noticeFor("select history", err)
		h.renderDashboard(w, r, s, dashboardState{status: status, notice: notice, selected: -1})
		return
	}

	h.renderDashboard(w, r, s, dashboardState{
		selected:   index,
		current:    toMessageViewModel(index, msg),
		sourceText: msg.DerivedText(),
	})
}

// SubmitQuery dispatches the form's query and shows the aggregated answer.
func (h *Handler) SubmitQuery(w http.ResponseWriter, r *http.Request, s model.Session) {
	if !precheckCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}
	if err := upload.ParseForm(w, r); err != nil {
		notice, status := h.noticeFor("parse upload", err)
		h.renderDashboard(w, r, s, dashboardState{status: status, notice: notice, selected: -1})
		return
	}
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}

	query := r.FormValue("query")
	attachments, err := upload.Attachments(r.MultipartForm)
	if err == nil {
		var result application.DispatchResult
		result, err = h.svc.Dispatch.Dispatch(r.Context(), query, attachments)
		if err == nil {
			h.renderDashboard(w, r, s, dashboardState{
				notice:     outcomeNotice(result.Outcome),
				selected:   0,
				current:    toMessageViewModel(0, result.Message),
				sourceText: result.Message.DerivedText(),
			})
			return
		}
	}

	notice, status := h.noticeFor("dispatch", err)
	h.renderDashboard(w, r, s, dashboardState{status: status, notice: notice, query: query, selected: -1})
}

// Translate runs the translation stub on the posted text.
func (h *Handler) Translate(w http.ResponseWriter, r *http.Request, s model.Session) {
	text := r.FormValue("text")
	language := r.FormValue("language")

	state := dashboardState{selected: -1, sourceText: text, language: language}
	if index, err := strconv.Atoi(r.FormValue("history_index")); err == nil && index >= 0 {
		if msg, err := h.svc.History.Get(r.Context(), index); err == nil {
			state.selected = index
			state.current = toMessageViewModel(index, msg)
		}
	}

	tr, err := h.svc.Translation.Translate(r.Context(), text, language)
	if err != nil {
		state.notice, state.status = h.noticeFor("translate", err)
	} else {
		state.translated = tr.Text
		state.language = tr.Language.Code
	}
	h.renderDashboard(w, r, s, state)
}

// APIKeys renders the provider key manager.
func (h *Handler) APIKeys(w http.ResponseWriter, r *http.Request, s model.Session) {
	h.renderAPIKeys(w, r, s, http.StatusOK, nil)
}

// SaveAPIKey stores the posted value for one provider key.
func (h *Handler) SaveAPIKey(w http.ResponseWriter, r *http.Request, s model.Session) {
	key := r.PathValue("key")
	if err := h.svc.Credentials.Set(r.Context(), s, key, r.FormValue("value")); err != nil {
		notice, status := h.noticeFor("save credential", err)
		h.renderAPIKeys(w, r, s, status, notice)
		return
	}
	h.renderAPIKeys(w, r, s, http.StatusOK, &vm.Notice{Kind: vm.NoticeSuccess, Text: key + " saved."})
}

// dashboardState is the per-request part of the dashboard.
type dashboardState struct {
	status     int
	notice     *vm.Notice
	query      string
	selected   int
	current    *vm.MessageViewModel
	sourceText string
	language   string
	translated string
}

func (h *Handler) renderDashboard(w http.ResponseWriter, r *http.Request, s model.Session, st dashboardState) {
	messages, err := h.svc.History.List(r.Context())
	if err != nil {
		h.logger.Error("failed to load history", "error", err)
		if st.notice == nil {
			st.notice, st.status = errorNotice(err)
		}
	}

	status := st.status
	if status == 0 {
		status = http.StatusOK
	}

	data := vm.DashboardViewModel{
		Username:       s.Username,
		IsAdmin:        s.IsAdmin,
		CSRFToken:      csrfToken(w, r),
		Notice:         st.notice,
		Query:          st.query,
		Current:        st.current,
		History:        toHistoryViewModels(messages, st.selected),
		MaxAttachments: model.MaxAttachments,
		Translation: vm.TranslationViewModel{
			SourceText:    st.sourceText,
			SelectedIndex: st.selected,
			Languages:     toLanguageOptions(h.svc.Translation.Languages(), st.language),
			Result:        st.translated,
		},
	}
	h.render(w, r, status, pages.Dashboard(data))
}

func (h *Handler) renderAPIKeys(w http.ResponseWriter, r *http.Request, s model.Session, status int, notice *vm.Notice) {
	view, err := h.svc.Credentials.View(r.Context(), s)
	if err != nil {
		notice, status = h.noticeFor("view credentials", err)
	}

	data := toCredentialsViewModel(s, view, csrfToken(w, r))
	data.Notice = notice
	h.render(w, r, status, pages.APIKeys(data))
}

func (h *Handler) authFailure(w http.ResponseWriter, r *http.Request, signup bool, username string, err error) {
	notice, status := h.noticeFor("authenticate", err)
	h.render(w, r, status, pages.AuthPage(vm.AuthViewModel{
		Signup:    signup,
		CSRFToken: csrfToken(w, r),
		Username:  username,
		Notice:    notice,
	}))
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, user model.User) {
	token, err := h.svc.Sessions.Issue(user)
	if err != nil {
		h.logger.Error("failed to issue session", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	session.SetCookie(w, token, h.svc.Sessions.TTL())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// noticeFor maps err to a banner, logging unexpected errors.
func (h *Handler) noticeFor(op string, err error) (*vm.Notice, int) {
	notice, status := errorNotice(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(op+" failed", "error", err)
	}
	return notice, status
}

// render writes component inside the page layout.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := templates.Layout(pageTitle, component).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render page", "path", r.URL.Path, "error", err)
	}
}
