// Package decode turns response node trees into typed entities. The engine
// names semantically identical fields differently across report types and
// versions, so every field is looked up through an ordered candidate list;
// the candidate tables in entities.go are the single authoritative record of
// that protocol knowledge.
package decode

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallygate-dev/tallygate/internal/envelope"
	"github.com/tallygate-dev/tallygate/internal/tallyerr"
)

// Resolve returns the text of the first candidate present with non-empty
// content, checking each name first as a direct child tag and then as an
// attribute. It returns def when nothing resolves and never fails.
func Resolve(n *envelope.Node, candidates []string, def string) string {
	if v, ok := resolve(n, candidates); ok {
		return v
	}
	return def
}

func resolve(n *envelope.Node, candidates []string) (string, bool) {
	for _, name := range candidates {
		if c, ok := n.Child(name); ok {
			if t := c.Text(); t != "" {
				return t, true
			}
		}
		if v, ok := n.Attr(name); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// ResolveDecimal parses the first resolvable candidate as a decimal. An
// absent field is not an error: ok is false and err is nil. A present but
// unparsable value is an InvalidFieldError, never a silent zero.
func ResolveDecimal(n *envelope.Node, candidates []string) (decimal.Decimal, bool, error) {
	raw, present := resolve(n, candidates)
	if !present {
		return decimal.Zero, false, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, &tallyerr.InvalidFieldError{Field: candidates[0], Raw: raw, Err: err}
	}
	return d, true, nil
}

// Engine responses carry dates as YYYY-MM-DD; older versions emit DD-MM-YYYY
// or the compact YYYYMMDD. Values may trail a time component, which is
// ignored.
var dateLayouts = []string{"2006-01-02", "02-01-2006", "20060102"}

// ResolveDate parses the first resolvable candidate as a date, with the same
// absent/invalid contract as ResolveDecimal.
func ResolveDate(n *envelope.Node, candidates []string) (time.Time, bool, error) {
	raw, present := resolve(n, candidates)
	if !present {
		return time.Time{}, false, nil
	}
	t, err := ParseDate(raw)
	if err != nil {
		return time.Time{}, false, &tallyerr.InvalidFieldError{Field: candidates[0], Raw: raw, Err: err}
	}
	return t, true, nil
}

// ParseDate parses an engine-reported date string.
func ParseDate(raw string) (time.Time, error) {
	s := raw
	if len(s) > 10 {
		s = s[:10]
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}
