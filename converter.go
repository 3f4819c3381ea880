// Package sqlstyle converts SQL statements between parameter
// placeholder styles and reshapes the accompanying argument values to
// match.
//
// A Converter is built once for an (in, out) style pair and reused:
//
//	conv, err := sqlstyle.New(sqlstyle.Named, sqlstyle.NumericDollar)
//	if err != nil {
//		return err
//	}
//	sql, args, err := conv.Format(
//		"SELECT * FROM users WHERE id = :id",
//		map[string]any{"id": 7},
//	)
//	// sql  = "SELECT * FROM users WHERE id = $1"
//	// args = []any{7}
//
// Placeholders inside string literals and comments are left alone, and
// sequence values expand into one placeholder per element so that
// "IN (:names)" works without manual placeholder counting.
package sqlstyle

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/zoobzio/sqlstyle/internal/scan"
)

// Converter rewrites SQL from one placeholder style to another. It is
// immutable after New and safe for concurrent use, except that the
// optional scan cache serializes internally.
type Converter struct {
	cache   *lru.Cache[string, scanResult]
	matcher *scan.Matcher

	in      Style
	out     Style
	inSpec  styleSpec
	outSpec styleSpec

	escape        bool
	stripComments bool
	expand        bool
	cacheSize     int
}

// Option configures a Converter.
type Option func(*Converter)

// WithEscape enables in-style escape sequences: a doubled sigil in the
// input ("??", "::", "$$", "%%") is rewritten as the single literal
// character instead of being left untouched.
func WithEscape() Option {
	return func(c *Converter) {
		c.escape = true
	}
}

// WithoutCommentStripping keeps line-leading SQL comments in the
// output. Comments are stripped by default; either way their contents
// never match as placeholders.
func WithoutCommentStripping() Option {
	return func(c *Converter) {
		c.stripComments = false
	}
}

// WithSequenceExpansion overrides the default tuple expansion
// behavior. By default sequences expand for every output style except
// the named ones.
func WithSequenceExpansion(enabled bool) Option {
	return func(c *Converter) {
		c.expand = enabled
	}
}

// New builds a converter from the in style to the out style.
func New(in, out Style, opts ...Option) (*Converter, error) {
	inSpec, err := specFor(in)
	if err != nil {
		return nil, err
	}
	outSpec, err := specFor(out)
	if err != nil {
		return nil, err
	}

	c := &Converter{
		in:            in,
		out:           out,
		inSpec:        inSpec,
		outSpec:       outSpec,
		stripComments: true,
		expand:        outSpec.class != ClassNamed,
	}
	for _, opt := range opts {
		opt(c)
	}

	// A literal '%' in the input would be read as a formatting
	// directive by a percent-style backend, so it must be doubled on
	// the way out unless the input style already polices percents.
	doublePercent := inSpec.sigil != '%' && outSpec.sigil == '%'
	c.matcher = scan.NewMatcher(inSpec.syntax, c.escape, doublePercent)

	if c.cacheSize > 0 {
		cache, err := lru.New[string, scanResult](c.cacheSize)
		if err != nil {
			return nil, err
		}
		c.cache = cache
	}
	return c, nil
}

// In returns the input style.
func (c *Converter) In() Style { return c.in }

// Out returns the output style.
func (c *Converter) Out() Style { return c.out }

// Format converts a single statement. params holds the placeholder
// values: a map for named input styles, a slice (or a map keyed by
// number) for ordinal and numeric input styles. It returns the
// rewritten SQL and the values reordered for the output style, always
// as a flat positional slice.
func (c *Converter) Format(sql string, params any) (string, []any, error) {
	src, err := c.newSource(params)
	if err != nil {
		return "", nil, err
	}
	out, args, _, err := c.rewrite(sql, src)
	if err != nil {
		return "", nil, err
	}
	return out, args, nil
}

// FormatMany converts a statement once for execution against many
// parameter sets, as with ExecMany-style driver batching. The first
// row fixes the sequence expansion widths; every later row must match
// them or an InconsistentExpansionError is returned.
func (c *Converter) FormatMany(sql string, manyParams []any) (string, [][]any, error) {
	if len(manyParams) == 0 {
		return "", nil, &UnsupportedConversionError{
			In:     c.in,
			Out:    c.out,
			Reason: "FormatMany requires at least one parameter set",
		}
	}

	sources := make([]*argSource, len(manyParams))
	for i, params := range manyParams {
		src, err := c.newSource(params)
		if err != nil {
			return "", nil, err
		}
		sources[i] = src
	}

	out, first, plan, err := c.rewrite(sql, sources[0])
	if err != nil {
		return "", nil, err
	}

	rows := make([][]any, len(manyParams))
	rows[0] = first
	for i := 1; i < len(sources); i++ {
		row, err := c.applyPlan(plan, sources[i], i)
		if err != nil {
			return "", nil, err
		}
		rows[i] = row
	}
	return out, rows, nil
}
