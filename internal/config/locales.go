package config

import "strings"

// LocaleConfig describes a supported parsing locale and its default timezone
type LocaleConfig struct {
	Code     string
	Name     string
	Timezone string
}

// DefaultLocale is used when LOCALE is unset or names an unknown locale
const DefaultLocale = "en"

// SupportedLocales maps locale codes to their configuration. Timezones are
// IANA names so they resolve through time.LoadLocation.
var SupportedLocales = map[string]LocaleConfig{
	"en": {Code: "en", Name: "English", Timezone: "UTC"},
	"pt": {Code: "pt", Name: "Portuguese", Timezone: "America/Sao_Paulo"},
	"ru": {Code: "ru", Name: "Russian", Timezone: "Europe/Moscow"},
}

// GetLocaleConfig returns the configuration for the given locale code,
// falling back to the default locale for unknown codes.
func GetLocaleConfig(code string) LocaleConfig {
	if locale, ok := SupportedLocales[strings.ToLower(code)]; ok {
		return locale
	}
	return SupportedLocales[DefaultLocale]
}

// AvailableLocales returns the codes of all supported locales
func AvailableLocales() []string {
	codes := make([]string, 0, len(SupportedLocales))
	for code := range SupportedLocales {
		codes = append(codes, code)
	}
	return codes
}
