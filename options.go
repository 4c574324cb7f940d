package namelist

import (
	"fmt"
	"log/slog"
)

// Option configures parsing and serialization.
type Option func(*options) error

type options struct {
	inline bool
	logger *slog.Logger
}

func newOptions(opts []Option) (*options, error) {
	o := &options{inline: true}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// InlineArrays selects how arrays are written. With true (the default) an
// array is written on one line, "x = 1 2 3". With false every element gets
// its own indexed assignment, "x(1) = 1".
func InlineArrays(inline bool) Option {
	return func(o *options) error {
		o.inline = inline
		return nil
	}
}

// WithLogger sets the logger the parser traces to at debug level, for
// example when a duplicate group is renamed or text outside any group is
// ignored. Without it nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) error {
		if l == nil {
			return fmt.Errorf("namelist: logger must not be nil")
		}
		o.logger = l
		return nil
	}
}
