package portfolio

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Extractor applies a rule set to a document. It holds no mutable state and
// is safe for concurrent use.
type Extractor struct {
	rules  []Rule
	logger *zap.Logger
}

type Option func(*Extractor)

// WithLogger sets the logger used to report fields that fell back.
func WithLogger(l *zap.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRules replaces the default rule set.
func WithRules(rules ...Rule) Option {
	return func(e *Extractor) {
		e.rules = rules
	}
}

func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		rules:  DefaultRules(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns the fields handled by the extractor, in application order.
func (e *Extractor) Rules() []string {
	fields := make([]string, 0, len(e.rules))
	for _, r := range e.rules {
		fields = append(fields, r.Field())
	}
	return fields
}

// Extract builds a Profile from raw. It never fails: a rule that does not
// match, or that panics, leaves its field at the rule's default, and fields
// without a rule keep the canonical value from ExtractDefaults.
func (e *Extractor) Extract(raw string) Profile {
	text := strings.ReplaceAll(raw, "\r\n", "\n")

	p := ExtractDefaults()
	fallbacks := 0
	for _, r := range e.rules {
		if err := apply(r, text, &p); err != nil {
			fallbacks++
			r.Default(&p)
			if errors.Is(err, ErrFieldNotFound) {
				e.logger.Debug("field not found, using default", zap.String("field", r.Field()))
			} else {
				e.logger.Warn("extraction rule failed, using default",
					zap.String("field", r.Field()),
					zap.Error(err))
			}
		}
	}

	e.logger.Debug("profile extracted",
		zap.Int("bytes", len(raw)),
		zap.Int("rules", len(e.rules)),
		zap.Int("fallbacks", fallbacks))
	return p
}

// apply turns a panicking rule into an error. The caller then resets the
// field with the rule's Default, so a half-written value never survives.
func apply(r Rule, text string, p *Profile) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("rule %s panicked: %v", r.Field(), rec)
		}
	}()
	return r.Apply(text, p)
}

var defaultExtractor = NewExtractor()

// Extract runs the default rule set over raw.
func Extract(raw string) Profile {
	return defaultExtractor.Extract(raw)
}
