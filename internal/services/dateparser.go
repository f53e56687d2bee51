package services

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules"
	"github.com/olebedev/when/rules/br"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/olebedev/when/rules/ru"
	"go.uber.org/zap"

	"github.com/ViniciusX22/whatsapp-scheduler/internal/config"
	"github.com/ViniciusX22/whatsapp-scheduler/pkg/logger"
)

// ErrNoDateFound indicates the text contains no interpretable date/time
// expression. It is a not-found signal, not a fault.
var ErrNoDateFound = errors.New("no date/time expression found in text")

// DateParser resolves a free-text phrase to an absolute point in time
type DateParser interface {
	Parse(text, timezone string) (time.Time, error)
}

// WhenDateParser parses natural-language phrases with locale-specific rules,
// falling back to explicit calendar formats. The locale can be swapped at
// runtime without rebuilding the service.
type WhenDateParser struct {
	mu     sync.RWMutex
	parser *when.Parser
	locale config.LocaleConfig
}

// NewWhenDateParser creates a parser for the given locale code. Unknown
// codes fall back to the default locale.
func NewWhenDateParser(localeCode string) *WhenDateParser {
	p := &WhenDateParser{}
	p.SetLocale(localeCode)
	return p
}

// SetLocale switches the parsing locale at runtime
func (p *WhenDateParser) SetLocale(localeCode string) {
	locale := config.GetLocaleConfig(localeCode)
	if !strings.EqualFold(locale.Code, localeCode) {
		logger.Warn("Locale not supported, falling back to default",
			zap.String("requested", localeCode),
			zap.String("fallback", locale.Code),
		)
	}

	parser := when.New(nil)
	parser.Add(localeRules(locale.Code)...)
	parser.Add(common.All...)

	p.mu.Lock()
	p.parser = parser
	p.locale = locale
	p.mu.Unlock()
}

// Locale returns the currently configured locale
func (p *WhenDateParser) Locale() config.LocaleConfig {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.locale
}

// Parse resolves text to an absolute time in the given timezone. An empty
// timezone uses the locale's default. Relative phrases resolve forward from
// the current instant. Returns ErrNoDateFound when nothing interpretable is
// present.
func (p *WhenDateParser) Parse(text, timezone string) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, ErrNoDateFound
	}

	p.mu.RLock()
	parser := p.parser
	locale := p.locale
	p.mu.RUnlock()

	if timezone == "" {
		timezone = locale.Timezone
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Warn("Unknown timezone, using UTC",
			zap.String("timezone", timezone),
			zap.Error(err),
		)
		loc = time.UTC
	}

	// Explicit calendar dates ("2026-09-01 10:00") go first so their time
	// component is not mistaken for a time-of-day phrase
	if parsed, err := dateparse.ParseIn(text, loc); err == nil {
		return parsed, nil
	}

	result, err := parser.Parse(text, time.Now().In(loc))
	if err != nil {
		logger.Debug("Natural-language date parsing failed",
			zap.String("text", text),
			zap.Error(err),
		)
		return time.Time{}, ErrNoDateFound
	}
	if result == nil {
		return time.Time{}, ErrNoDateFound
	}

	return result.Time, nil
}

func localeRules(code string) []rules.Rule {
	switch code {
	case "pt":
		return br.All
	case "ru":
		return ru.All
	default:
		return en.All
	}
}
