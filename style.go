package sqlstyle

import (
	"github.com/zoobzio/sqlstyle/internal/scan"
)

// Style identifies a SQL parameter placeholder style.
type Style string

const (
	// Qmark uses ordinal "?" placeholders (SQLite, ODBC).
	Qmark Style = "qmark"
	// Numeric uses ":1" placeholders numbered from 1 (Oracle).
	Numeric Style = "numeric"
	// NumericDollar uses "$1" placeholders numbered from 1 (PostgreSQL).
	NumericDollar Style = "numeric_dollar"
	// Named uses ":name" placeholders (Oracle, SQLite).
	Named Style = "named"
	// NamedDollar uses "$name" placeholders.
	NamedDollar Style = "named_dollar"
	// Format uses ordinal "%s" placeholders (MySQL drivers).
	Format Style = "format"
	// PyFormat uses "%(name)s" placeholders (MySQL, psycopg).
	PyFormat Style = "pyformat"
)

// Class groups styles by how their placeholders bind to values.
type Class int

const (
	// ClassOrdinal placeholders bind by position of occurrence.
	ClassOrdinal Class = iota
	// ClassNumeric placeholders bind by an explicit 1-based number.
	ClassNumeric
	// ClassNamed placeholders bind by identifier.
	ClassNamed
)

// String returns a human-readable class name.
func (c Class) String() string {
	switch c {
	case ClassOrdinal:
		return "ordinal"
	case ClassNumeric:
		return "numeric"
	case ClassNamed:
		return "named"
	default:
		return "unknown"
	}
}

// styleSpec is the fixed shape of a registered style.
type styleSpec struct {
	class  Class
	syntax scan.Syntax
	sigil  byte
}

// specFor resolves a style to its registered spec.
func specFor(s Style) (styleSpec, error) {
	switch s {
	case Qmark:
		return styleSpec{class: ClassOrdinal, syntax: scan.Qmark, sigil: '?'}, nil
	case Numeric:
		return styleSpec{class: ClassNumeric, syntax: scan.ColonNumber, sigil: ':'}, nil
	case NumericDollar:
		return styleSpec{class: ClassNumeric, syntax: scan.DollarNumber, sigil: '$'}, nil
	case Named:
		return styleSpec{class: ClassNamed, syntax: scan.ColonName, sigil: ':'}, nil
	case NamedDollar:
		return styleSpec{class: ClassNamed, syntax: scan.DollarName, sigil: '$'}, nil
	case Format:
		return styleSpec{class: ClassOrdinal, syntax: scan.PercentS, sigil: '%'}, nil
	case PyFormat:
		return styleSpec{class: ClassNamed, syntax: scan.PercentParen, sigil: '%'}, nil
	default:
		return styleSpec{}, &UnsupportedStyleError{Style: s}
	}
}

// Class reports the binding class of a style. It returns an
// UnsupportedStyleError for unregistered styles.
func (s Style) Class() (Class, error) {
	spec, err := specFor(s)
	if err != nil {
		return 0, err
	}
	return spec.class, nil
}

// Styles returns every registered style.
func Styles() []Style {
	return []Style{Qmark, Numeric, NumericDollar, Named, NamedDollar, Format, PyFormat}
}
