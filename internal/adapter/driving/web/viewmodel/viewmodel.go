// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// Notice kinds, used as CSS modifiers.
const (
	NoticeSuccess = "success"
	NoticeWarning = "warning"
	NoticeError   = "error"
)

// Notice is a transient message shown at the top of a page.
type Notice struct {
	Kind    string
	Text    string
	Details []string
}

// AuthViewModel holds the login and signup form state.
type AuthViewModel struct {
	Signup    bool // false renders the login form
	CSRFToken string
	Username  string
	Notice    *Notice
}

// ProviderResultViewModel is one provider card of an aggregated answer.
type ProviderResultViewModel struct {
	Provider    string
	Name        string
	ContentHTML string // sanitized HTML rendered from markdown
	HasError    bool
}

// MessageViewModel is a full aggregated answer.
type MessageViewModel struct {
	Index      int
	Query      string
	Timestamp  string
	Responses  []ProviderResultViewModel
	ErrorCount int
}

// HistoryItemViewModel is one entry of the history sidebar.
type HistoryItemViewModel struct {
	Index     int
	Query     string
	Timestamp string
	Path      string
	Selected  bool
	Badges    []ProviderBadgeViewModel
}

// ProviderBadgeViewModel marks one provider that answered a history entry.
type ProviderBadgeViewModel struct {
	Provider string
	Label    string
	HasError bool
}

// LanguageOption is one entry of the language picker.
type LanguageOption struct {
	Code     string
	Name     string
	Selected bool
}

// TranslationViewModel holds the translation panel state.
type TranslationViewModel struct {
	SourceText    string
	SelectedIndex int // history index of the source message, -1 if none
	Languages     []LanguageOption
	Result        string
}

// DashboardViewModel holds everything the dashboard page renders.
type DashboardViewModel struct {
	Username       string
	IsAdmin        bool
	CSRFToken      string
	Notice         *Notice
	Query          string
	Current        *MessageViewModel
	History        []HistoryItemViewModel
	Translation    TranslationViewModel
	MaxAttachments int
}

// CredentialEntryViewModel is one row of the API key manager.
type CredentialEntryViewModel struct {
	KeyName    string
	Label      string
	Value      string
	Configured bool
	ActionPath string
}

// CredentialsViewModel holds the API key manager page state.
type CredentialsViewModel struct {
	Username   string
	CSRFToken  string
	Restricted bool
	Entries    []CredentialEntryViewModel
	Notice     *Notice
}
