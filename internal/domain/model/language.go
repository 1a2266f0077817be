package model

// DefaultLanguage is used when no target language is given.
const DefaultLanguage = "en"

// Language is a translation target.
type Language struct {
	Code string
	Name string
}

// Languages returns the supported translation targets.
func Languages() []Language {
	return []Language{
		{Code: "pt", Name: "Portuguese"},
		{Code: "en", Name: "English"},
		{Code: "es", Name: "Spanish"},
		{Code: "fr", Name: "French"},
		{Code: "de", Name: "German"},
	}
}

// LookupLanguage returns the language for code.
func LookupLanguage(code string) (Language, bool) {
	for _, l := range Languages() {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// Translation is the result of the translation stub.
type Translation struct {
	Language Language
	Text     string
}
