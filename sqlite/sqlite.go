// Package sqlite provides converters targeting the SQLite placeholder
// style. SQLite accepts several syntaxes natively; ? is the one every
// driver binds positionally.
package sqlite

import "github.com/zoobzio/sqlstyle"

// Style is the conventional SQLite placeholder style: ?
const Style = sqlstyle.Qmark

// New builds a converter from the given input style to SQLite
// placeholders.
func New(in sqlstyle.Style, opts ...sqlstyle.Option) (*sqlstyle.Converter, error) {
	return sqlstyle.New(in, Style, opts...)
}

// FromNamed builds a converter from ":name" placeholders.
func FromNamed(opts ...sqlstyle.Option) (*sqlstyle.Converter, error) {
	return New(sqlstyle.Named, opts...)
}

// FromNumeric builds a converter from Oracle-style ":1" placeholders.
func FromNumeric(opts ...sqlstyle.Option) (*sqlstyle.Converter, error) {
	return New(sqlstyle.Numeric, opts...)
}
