// Package postgres provides converters targeting the PostgreSQL
// placeholder style used by pgx and lib/pq.
package postgres

import "github.com/zoobzio/sqlstyle"

// Style is the native PostgreSQL placeholder style: $1, $2, ...
const Style = sqlstyle.NumericDollar

// New builds a converter from the given input style to PostgreSQL
// placeholders.
func New(in sqlstyle.Style, opts ...sqlstyle.Option) (*sqlstyle.Converter, error) {
	return sqlstyle.New(in, Style, opts...)
}

// FromNamed builds a converter from ":name" placeholders. PostgreSQL
// drivers take positional arguments, so named statements authored for
// readability convert to $N with a flat argument slice.
func FromNamed(opts ...sqlstyle.Option) (*sqlstyle.Converter, error) {
	return New(sqlstyle.Named, opts...)
}
