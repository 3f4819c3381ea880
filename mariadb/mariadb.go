// Package mariadb provides converters targeting the MySQL and MariaDB
// placeholder style used by go-sql-driver/mysql.
package mariadb

import "github.com/zoobzio/sqlstyle"

// Style is the native MySQL/MariaDB placeholder style: ?
const Style = sqlstyle.Qmark

// New builds a converter from the given input style to MySQL
// placeholders.
func New(in sqlstyle.Style, opts ...sqlstyle.Option) (*sqlstyle.Converter, error) {
	return sqlstyle.New(in, Style, opts...)
}

// FromNamed builds a converter from ":name" placeholders.
func FromNamed(opts ...sqlstyle.Option) (*sqlstyle.Converter, error) {
	return New(sqlstyle.Named, opts...)
}

// FromPyFormat builds a converter from "%(name)s" placeholders, the
// style statements ported from Python MySQL clients arrive in. Literal
// percent signs in such statements are already doubled; the converter
// collapses them back with escape handling enabled.
func FromPyFormat(opts ...sqlstyle.Option) (*sqlstyle.Converter, error) {
	return New(sqlstyle.PyFormat, append(opts, sqlstyle.WithEscape())...)
}
