package i18n

import (
	"golang.org/x/text/language"
)

// Storefront locales. Russian is the primary audience and the fallback.
const (
	LocaleRU = "ru"
	LocaleEN = "en"
)

var supported = []language.Tag{
	language.Russian, // first entry is the fallback
	language.English,
}

var matcher = language.NewMatcher(supported)

// Normalize maps an arbitrary locale string to a supported locale.
// Unknown or empty input falls back to Russian.
func Normalize(locale string) string {
	switch locale {
	case LocaleRU, LocaleEN:
		return locale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return LocaleRU
	}
	return fromTag(tag)
}

// Resolve picks the locale for a request. An explicit ?lang value wins;
// otherwise the Accept-Language header is matched against the supported
// locales; otherwise Russian.
func Resolve(langParam, acceptLanguage string) string {
	if langParam != "" {
		return Normalize(langParam)
	}
	if acceptLanguage == "" {
		return LocaleRU
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return LocaleRU
	}
	tag, _, _ := matcher.Match(tags...)
	return fromTag(tag)
}

func fromTag(tag language.Tag) string {
	base, _ := tag.Base()
	if base.String() == "en" {
		return LocaleEN
	}
	return LocaleRU
}
