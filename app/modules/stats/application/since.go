package statsservice

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var ErrInvalidSince = errors.New("unrecognized since expression")

var sinceLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseSince turns a since expression into an instant. Absolute dates are tried
// first, then natural language such as "3 days ago" or "last monday".
func ParseSince(expr string, now time.Time) (time.Time, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return time.Time{}, nil
	}

	for _, layout := range sinceLayouts {
		if t, err := time.ParseInLocation(layout, expr, now.Location()); err == nil {
			return t, nil
		}
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	r, err := w.Parse(strings.ToLower(expr), now)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidSince, expr, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidSince, expr)
	}
	return r.Time, nil
}
