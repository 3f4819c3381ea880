package sqlstyle

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/zoobzio/sqlstyle/internal/scan"
)

// conversionKey identifies an input parameter. name carries the
// placeholder identifier (or the decimal number for numeric and
// ordinal placeholders); index is the 0-based positional index, or -1
// for named parameters.
type conversionKey struct {
	name  string
	index int
}

// conversion records how one input parameter maps into the output
// value slice. slots holds the output positions the parameter fills:
// one slot normally, one per element when the value expanded, none
// when an empty sequence rendered as NULL.
type conversion struct {
	key    conversionKey
	slots  []int
	expand bool
}

// rewritePlan captures the shape of a rewritten statement so further
// parameter sets can be bound without rescanning the SQL.
type rewritePlan struct {
	conversions []conversion
	size        int
}

// scanResult pairs a statement, post comment stripping, with its
// tokens. Cached per input SQL when a scan cache is configured.
type scanResult struct {
	sql    string
	tokens []scan.Token
}

func (c *Converter) scanSQL(sql string) (string, []scan.Token) {
	if c.cache != nil {
		if r, ok := c.cache.Get(sql); ok {
			return r.sql, r.tokens
		}
	}
	s := sql
	if c.stripComments {
		s = scan.StripComments(s)
	}
	tokens := c.matcher.Scan(s)
	if c.cache != nil {
		c.cache.Add(sql, scanResult{sql: s, tokens: tokens})
	}
	return s, tokens
}

// rewrite converts sql against src, returning the output SQL, the
// bound values in output order, and the plan used to bind them.
func (c *Converter) rewrite(sql string, src *argSource) (string, []any, *rewritePlan, error) {
	s, tokens := c.scanSQL(sql)

	var (
		b       strings.Builder
		out     []any
		plan    = &rewritePlan{}
		seen    map[conversionKey]string
		ordinal int
		last    int
	)
	if c.outSpec.class != ClassOrdinal {
		// Named and numeric outputs bind repeated parameters to a
		// single placeholder.
		seen = make(map[conversionKey]string)
	}
	b.Grow(len(s) + len(s)/4)

	for _, tok := range tokens {
		b.WriteString(s[last:tok.Start])
		last = tok.End

		switch tok.Kind {
		case scan.KindPercent:
			b.WriteString("%%")
			continue
		case scan.KindEscape:
			b.WriteString(s[tok.Start+1 : tok.End])
			continue
		}

		key, v, err := c.resolveToken(tok, src, &ordinal)
		if err != nil {
			return "", nil, nil, err
		}

		if seen != nil {
			if rendered, ok := seen[key]; ok {
				b.WriteString(rendered)
				continue
			}
		}

		rendered, cv, err := c.convertToken(key, v, &out)
		if err != nil {
			return "", nil, nil, err
		}
		b.WriteString(rendered)
		plan.conversions = append(plan.conversions, cv)
		if seen != nil {
			seen[key] = rendered
		}
	}
	b.WriteString(s[last:])

	plan.size = len(out)
	return b.String(), out, plan, nil
}

// resolveToken looks up the value a placeholder binds to and returns
// its canonical key. ordinal counts bare placeholder occurrences for
// ordinal input styles.
func (c *Converter) resolveToken(tok scan.Token, src *argSource, ordinal *int) (conversionKey, any, error) {
	switch c.inSpec.class {
	case ClassNamed:
		v, ok := src.byName(tok.Name)
		if !ok {
			return conversionKey{}, nil, &MissingParameterError{Name: tok.Name}
		}
		return conversionKey{name: tok.Name, index: -1}, v, nil

	case ClassNumeric:
		num, err := strconv.Atoi(tok.Name)
		if err != nil || num < 1 {
			// Positions number from 1; ":0" and overflowing digit
			// runs name no parameter.
			return conversionKey{}, nil, &InvalidIdentifierError{Identifier: tok.Name}
		}
		v, ok := src.byIndex(num - 1)
		if !ok {
			return conversionKey{}, nil, &MissingParameterError{Position: num}
		}
		// ":01" and ":1" are the same parameter.
		return conversionKey{name: strconv.Itoa(num), index: num - 1}, v, nil

	default: // ClassOrdinal
		k := *ordinal
		*ordinal++
		v, ok := src.byIndex(k)
		if !ok {
			return conversionKey{}, nil, &MissingParameterError{Position: k + 1}
		}
		return conversionKey{name: strconv.Itoa(k), index: k}, v, nil
	}
}

// convertToken renders one placeholder in the output style, appending
// the bound values to out and recording the slot assignment.
func (c *Converter) convertToken(key conversionKey, v any, out *[]any) (string, conversion, error) {
	if c.expand {
		if elems, ok := expandValues(v); ok {
			return c.expandToken(key, elems, out)
		}
	}

	slot := len(*out)
	*out = append(*out, v)
	rendered, err := c.renderOut(c.outName(key, 0, false), slot+1)
	if err != nil {
		return "", conversion{}, err
	}
	return rendered, conversion{key: key, slots: []int{slot}}, nil
}

// expandToken renders a sequence value as one placeholder per element.
// An empty sequence renders as the literal NULL so membership tests
// stay valid SQL.
func (c *Converter) expandToken(key conversionKey, elems []any, out *[]any) (string, conversion, error) {
	if len(elems) == 0 {
		return "NULL", conversion{key: key, expand: true}, nil
	}

	pieces := make([]string, len(elems))
	slots := make([]int, len(elems))
	for i, elem := range elems {
		slot := len(*out)
		*out = append(*out, elem)
		slots[i] = slot
		rendered, err := c.renderOut(c.outName(key, i, true), slot+1)
		if err != nil {
			return "", conversion{}, err
		}
		pieces[i] = rendered
	}
	return strings.Join(pieces, ","), conversion{key: key, slots: slots, expand: true}, nil
}

// outName synthesizes the output parameter name. Only named output
// styles use it; positional names pick up a leading underscore so they
// stay valid identifiers.
func (c *Converter) outName(key conversionKey, elem int, expanded bool) string {
	if c.outSpec.class != ClassNamed {
		return ""
	}
	if c.inSpec.class == ClassNamed {
		if expanded {
			return key.name + "__" + strconv.Itoa(elem) + "_sqlp"
		}
		return key.name
	}
	if expanded {
		return "_" + key.name + "_" + strconv.Itoa(elem)
	}
	return "_" + key.name
}

// renderOut writes a single output placeholder. num is the 1-based
// output position for numeric styles.
func (c *Converter) renderOut(name string, num int) (string, error) {
	switch c.out {
	case Qmark:
		return "?", nil
	case Format:
		return "%s", nil
	case Numeric:
		return ":" + strconv.Itoa(num), nil
	case NumericDollar:
		return "$" + strconv.Itoa(num), nil
	}

	// Named output styles.
	if !validIdentifier(name) {
		return "", &InvalidIdentifierError{Identifier: name}
	}
	switch c.out {
	case Named:
		return ":" + name, nil
	case NamedDollar:
		return "$" + name, nil
	case PyFormat:
		return "%(" + name + ")s", nil
	}
	return "", &UnsupportedStyleError{Style: c.out}
}

// applyPlan binds one parameter set against an established plan,
// enforcing the expansion widths fixed by the first row.
func (c *Converter) applyPlan(plan *rewritePlan, src *argSource, row int) ([]any, error) {
	out := make([]any, plan.size)
	for _, cv := range plan.conversions {
		v, ok := c.lookup(cv.key, src)
		if !ok {
			if cv.key.index < 0 {
				return nil, &MissingParameterError{Name: cv.key.name}
			}
			return nil, &MissingParameterError{Position: cv.key.index + 1}
		}

		if !cv.expand {
			out[cv.slots[0]] = v
			continue
		}

		elems, expandable := expandValues(v)
		if !expandable {
			return nil, c.expansionError(cv.key, row, len(cv.slots), -1)
		}
		if len(elems) != len(cv.slots) {
			return nil, c.expansionError(cv.key, row, len(cv.slots), len(elems))
		}
		for i, slot := range cv.slots {
			out[slot] = elems[i]
		}
	}
	return out, nil
}

func (c *Converter) lookup(key conversionKey, src *argSource) (any, bool) {
	if key.index < 0 {
		return src.byName(key.name)
	}
	return src.byIndex(key.index)
}

func (c *Converter) expansionError(key conversionKey, row, want, got int) error {
	e := &InconsistentExpansionError{Row: row, Want: want, Got: got}
	if key.index < 0 {
		e.Name = key.name
	} else {
		e.Position = key.index + 1
	}
	return e
}

// argSource is a normalized view over caller-supplied parameters.
type argSource struct {
	named  map[string]any
	seq    []any
	sparse map[int]any
}

// newSource normalizes params for the converter's input style. Named
// styles take a map keyed by parameter name. Positional styles take a
// slice, or a map keyed by number for sparse parameter sets.
func (c *Converter) newSource(params any) (*argSource, error) {
	if c.inSpec.class == ClassNamed {
		switch t := params.(type) {
		case map[string]any:
			return &argSource{named: t}, nil
		}
		rv := reflect.ValueOf(params)
		if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
			named := make(map[string]any, rv.Len())
			for _, k := range rv.MapKeys() {
				named[k.String()] = rv.MapIndex(k).Interface()
			}
			return &argSource{named: named}, nil
		}
		return nil, &UnsupportedConversionError{
			In:     c.in,
			Out:    c.out,
			Reason: "named input style requires map parameters",
		}
	}

	switch t := params.(type) {
	case []any:
		return &argSource{seq: t}, nil
	case map[string]any:
		sparse := make(map[int]any, len(t))
		for k, v := range t {
			n, err := strconv.Atoi(k)
			if err != nil {
				return nil, &InvalidIdentifierError{Identifier: k}
			}
			sparse[c.positionIndex(n)] = v
		}
		return &argSource{sparse: sparse}, nil
	case map[int]any:
		sparse := make(map[int]any, len(t))
		for k, v := range t {
			sparse[c.positionIndex(k)] = v
		}
		return &argSource{sparse: sparse}, nil
	}

	rv := reflect.ValueOf(params)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		seq := make([]any, rv.Len())
		for i := range seq {
			seq[i] = rv.Index(i).Interface()
		}
		return &argSource{seq: seq}, nil
	}
	return nil, &UnsupportedConversionError{
		In:     c.in,
		Out:    c.out,
		Reason: "positional input style requires slice parameters",
	}
}

// positionIndex converts a caller-facing position to a 0-based index.
// Numeric styles number from 1; ordinal maps are already 0-based.
func (c *Converter) positionIndex(n int) int {
	if c.inSpec.class == ClassNumeric {
		return n - 1
	}
	return n
}

func (s *argSource) byName(name string) (any, bool) {
	v, ok := s.named[name]
	return v, ok
}

func (s *argSource) byIndex(i int) (any, bool) {
	if s.sparse != nil {
		v, ok := s.sparse[i]
		return v, ok
	}
	if i < 0 || i >= len(s.seq) {
		return nil, false
	}
	return s.seq[i], true
}

func validIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' {
			continue
		}
		if c >= '0' && c <= '9' && i > 0 {
			continue
		}
		return false
	}
	return true
}
