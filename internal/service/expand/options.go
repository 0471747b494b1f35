package expand

import "go.uber.org/zap"

const (
	// DefaultCeiling is the largest suit×value product expanded per template.
	DefaultCeiling = 100
	// DefaultWarnThreshold logs a warning for large but allowed templates.
	DefaultWarnThreshold = 50
)

// Option customizes an Enumerator.
type Option func(*Enumerator)

// WithCeiling sets the per-template combination ceiling. Panics on n < 1.
func WithCeiling(n int) Option {
	if n < 1 {
		panic("expand: WithCeiling(n < 1)")
	}
	return func(e *Enumerator) {
		e.ceiling = n
	}
}

// WithWarnThreshold sets the combination count above which a warning is
// logged. Zero disables the warning.
func WithWarnThreshold(n int) Option {
	return func(e *Enumerator) {
		e.warnAt = n
	}
}

// WithSequentialIDs numbers hands key-1, key-2, ... per template key instead
// of encoding the suit and value choice.
func WithSequentialIDs() Option {
	return func(e *Enumerator) {
		e.sequential = true
	}
}

// WithLogger attaches a logger; nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Enumerator) {
		if l != nil {
			e.log = l
		}
	}
}
