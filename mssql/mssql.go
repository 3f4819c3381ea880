// Package mssql provides converters targeting the SQL Server ordinal
// placeholder style accepted by go-mssqldb's mssql driver.
package mssql

import "github.com/zoobzio/sqlstyle"

// Style is the ordinal placeholder style: ?
const Style = sqlstyle.Qmark

// New builds a converter from the given input style to SQL Server
// placeholders.
func New(in sqlstyle.Style, opts ...sqlstyle.Option) (*sqlstyle.Converter, error) {
	return sqlstyle.New(in, Style, opts...)
}

// FromNamed builds a converter from ":name" placeholders.
func FromNamed(opts ...sqlstyle.Option) (*sqlstyle.Converter, error) {
	return New(sqlstyle.Named, opts...)
}
