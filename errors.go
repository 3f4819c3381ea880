package sqlstyle

import "fmt"

// UnsupportedStyleError indicates a style name that is not registered.
type UnsupportedStyleError struct {
	Style Style
}

// Error implements the error interface.
func (e *UnsupportedStyleError) Error() string {
	return fmt.Sprintf("unsupported parameter style %q", string(e.Style))
}

// UnsupportedConversionError indicates a conversion that cannot be
// carried out between the configured styles, such as converting an
// ordinal input to a named output with no names to synthesize from.
type UnsupportedConversionError struct {
	In     Style
	Out    Style
	Reason string
}

// Error implements the error interface.
func (e *UnsupportedConversionError) Error() string {
	return fmt.Sprintf("cannot convert %s to %s: %s", e.In, e.Out, e.Reason)
}

// MissingParameterError indicates a placeholder with no corresponding
// value in the supplied parameters. Name is set for named and numeric
// placeholders; Position is the 1-based position for ordinal and
// numeric placeholders.
type MissingParameterError struct {
	Name     string
	Position int
}

// Error implements the error interface.
func (e *MissingParameterError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("missing value for parameter %q", e.Name)
	}
	return fmt.Sprintf("missing value for parameter at position %d", e.Position)
}

// InvalidIdentifierError indicates a synthesized or supplied parameter
// name that is not a valid placeholder identifier.
type InvalidIdentifierError struct {
	Identifier string
}

// Error implements the error interface.
func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid parameter identifier %q", e.Identifier)
}

// InconsistentExpansionError indicates a FormatMany row whose sequence
// values do not match the expansion widths established by the first
// row. Row is the 0-based index of the offending row. Want is the
// expected element count; Got is the observed count, or -1 when the
// value is not expandable at all.
type InconsistentExpansionError struct {
	Row      int
	Name     string
	Position int
	Want     int
	Got      int
}

// Error implements the error interface.
func (e *InconsistentExpansionError) Error() string {
	ref := e.Name
	if ref == "" {
		ref = fmt.Sprintf("position %d", e.Position)
	} else {
		ref = fmt.Sprintf("%q", ref)
	}
	if e.Got < 0 {
		return fmt.Sprintf("row %d: parameter %s is not expandable, want %d elements", e.Row, ref, e.Want)
	}
	return fmt.Sprintf("row %d: parameter %s has %d elements, want %d", e.Row, ref, e.Got, e.Want)
}
