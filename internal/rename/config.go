package rename

import (
	"os"
	"strings"

	"fsinventory/internal/fserr"
	"fsinventory/internal/naming"
)

const DefaultDigitWidth = 3

// Config is a fully validated rename batch. Build it with NewConfig.
type Config struct {
	dir       string
	sourceExt string
	targetExt string
	width     int
	desired   string
	slice     *naming.Slice
}

// Option sets an optional NewConfig parameter.
type Option func(*Config)

// WithDigitWidth sets the zero-padded counter width.
func WithDigitWidth(n int) Option {
	return func(c *Config) { c.width = n }
}

// WithDesiredName adds a fixed label fragment to every new name.
func WithDesiredName(name string) Option {
	return func(c *Config) { c.desired = name }
}

// WithSlice preserves characters start..end (1-based, inclusive) of each original stem.
func WithSlice(start, end int) Option {
	return func(c *Config) { c.slice = &naming.Slice{Start: start, End: end} }
}

// NewConfig validates every parameter before any filesystem mutation can happen.
func NewConfig(dir, sourceExt, targetExt string, opts ...Option) (*Config, error) {
	cfg := &Config{
		dir:       dir,
		sourceExt: sourceExt,
		targetExt: targetExt,
		width:     DefaultDigitWidth,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fserr.NotFound(dir, err)
	}
	if !info.IsDir() {
		return nil, fserr.NotFound(dir, nil)
	}

	if err := validateExtension("source extension", sourceExt); err != nil {
		return nil, err
	}
	if err := validateExtension("target extension", targetExt); err != nil {
		return nil, err
	}
	if cfg.width <= 0 {
		return nil, fserr.InvalidArgument("digit width must be a positive integer, got %d", cfg.width)
	}
	if cfg.slice != nil && !cfg.slice.Valid() {
		return nil, fserr.InvalidArgument("slice must be two positive integers with start <= end, got %s", cfg.slice)
	}

	return cfg, nil
}

func validateExtension(field, ext string) error {
	if ext == "" || !strings.HasPrefix(ext, ".") {
		return fserr.InvalidArgument("%s must start with '.' (e.g. \".txt\"), got %q", field, ext)
	}
	if strings.ContainsAny(ext, `/\`) {
		return fserr.InvalidArgument("%s must not contain a path separator, got %q", field, ext)
	}
	return nil
}

// Dir is the directory whose immediate children are renamed.
func (c *Config) Dir() string { return c.dir }

// SourceExt is the extension selecting files, matched ignoring case.
func (c *Config) SourceExt() string { return c.sourceExt }

// TargetExt is the extension every new name ends with.
func (c *Config) TargetExt() string { return c.targetExt }

// DigitWidth is the zero-padded counter width.
func (c *Config) DigitWidth() int { return c.width }

// DesiredName is the label fragment, empty when unset.
func (c *Config) DesiredName() string { return c.desired }

// Slice is the range kept from each original stem, nil when unset.
func (c *Config) Slice() *naming.Slice { return c.slice }
