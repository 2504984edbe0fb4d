package domain

import "strings"

// Language is the closed set of supported UI languages.
// Every externally reachable page must declare a URL for both values.
type Language string

const (
	LanguageEN Language = "en"
	LanguageFR Language = "fr"
)

// Languages lists all supported languages in a stable order.
func Languages() []Language {
	return []Language{LanguageEN, LanguageFR}
}

// ParseLanguage converts a raw string into a Language.
// Returns ErrUnknownLanguage for anything outside the closed set.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(s)) {
	case LanguageEN:
		return LanguageEN, nil
	case LanguageFR:
		return LanguageFR, nil
	}
	return "", ErrUnknownLanguage
}

// LanguageOf extracts the mandatory language prefix from a request path
// (e.g. "/en/in-person" -> LanguageEN).
// No default is assumed: a path without a recognizable prefix is a request
// error, because guessing would silently send the user to wrong-language URLs.
func LanguageOf(path string) (Language, error) {
	trimmed := strings.TrimPrefix(path, "/")
	seg, _, _ := strings.Cut(trimmed, "/")
	return ParseLanguage(seg)
}
