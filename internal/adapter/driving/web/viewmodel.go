package web

import (
	"fmt"
	"unicode/utf8"

	vm "github.com/ericfisherdev/academia/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/academia/internal/domain/model"
)

const (
	// historyQueryPreview is the number of runes of a query shown in the sidebar.
	historyQueryPreview = 60
	// badgeLabelRunes is the length of a provider badge in the sidebar.
	badgeLabelRunes  = 3
	timestampDisplay = "2006-01-02 15:04"
)

// toMessageViewModel converts a domain Message into a rendered answer.
func toMessageViewModel(index int, m model.Message) *vm.MessageViewModel {
	responses := make([]vm.ProviderResultViewModel, 0, len(m.Responses))
	for _, r := range m.Responses {
		responses = append(responses, vm.ProviderResultViewModel{
			Provider:    string(r.Provider),
			Name:        r.Provider.Name(),
			ContentHTML: RenderMarkdown(r.Content),
			HasError:    r.HasError,
		})
	}

	return &vm.MessageViewModel{
		Index:      index,
		Query:      m.Query,
		Timestamp:  m.Timestamp.Local().Format(timestampDisplay),
		Responses:  responses,
		ErrorCount: m.ErrorCount(),
	}
}

// toHistoryViewModels converts the stored history into sidebar entries.
// selected is the highlighted index, or -1.
func toHistoryViewModels(messages []model.Message, selected int) []vm.HistoryItemViewModel {
	items := make([]vm.HistoryItemViewModel, 0, len(messages))
	for i, m := range messages {
		items = append(items, vm.HistoryItemViewModel{
			Index:     i,
			Query:     truncate(m.Query, historyQueryPreview),
			Timestamp: m.Timestamp.Local().Format(timestampDisplay),
			Path:      fmt.Sprintf("/history/%d", i),
			Selected:  i == selected,
			Badges:    toProviderBadges(m.Responses),
		})
	}
	return items
}

// toProviderBadges abbreviates each answering provider for the sidebar.
func toProviderBadges(results []model.ProviderResult) []vm.ProviderBadgeViewModel {
	badges := make([]vm.ProviderBadgeViewModel, 0, len(results))
	for _, r := range results {
		label := []rune(string(r.Provider))
		if len(label) > badgeLabelRunes {
			label = label[:badgeLabelRunes]
		}
		badges = append(badges, vm.ProviderBadgeViewModel{
			Provider: r.Provider.Name(),
			Label:    string(label),
			HasError: r.HasError,
		})
	}
	return badges
}

// toLanguageOptions marks code as the selected language.
func toLanguageOptions(languages []model.Language, code string) []vm.LanguageOption {
	if code == "" {
		code = model.DefaultLanguage
	}
	options := make([]vm.LanguageOption, 0, len(languages))
	for _, l := range languages {
		options = append(options, vm.LanguageOption{
			Code:     l.Code,
			Name:     l.Name,
			Selected: l.Code == code,
		})
	}
	return options
}

// toCredentialsViewModel converts the credential view into the key manager rows.
func toCredentialsViewModel(s model.Session, view model.CredentialView, csrf string) vm.CredentialsViewModel {
	entries := make([]vm.CredentialEntryViewModel, 0, len(view.Entries))
	for _, e := range view.Entries {
		entries = append(entries, vm.CredentialEntryViewModel{
			KeyName:    e.KeyName,
			Label:      e.Label,
			Value:      e.Value,
			Configured: e.Configured,
			ActionPath: "/settings/api-keys/" + e.KeyName,
		})
	}
	return vm.CredentialsViewModel{
		Username:   s.Username,
		CSRFToken:  csrf,
		Restricted: view.Restricted,
		Entries:    entries,
	}
}

// outcomeNotice maps a dispatch outcome to its banner.
func outcomeNotice(o model.Outcome) *vm.Notice {
	kind := vm.NoticeSuccess
	switch o.Kind {
	case model.OutcomeTotalFailure:
		kind = vm.NoticeError
	case model.OutcomePartialFailure:
		kind = vm.NoticeWarning
	}
	return &vm.Notice{Kind: kind, Text: o.Notice()}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "…"
}
