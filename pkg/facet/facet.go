package facet

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Numeric facet keys take "min-max" range values. Everything else is textual.
var numericKeys = map[string]bool{
	"price":  true,
	"rating": true,
}

// Selection is an ordered multimap of facet key -> raw values, in the order
// they appeared in the query string. Order matters: the filter expression and
// the pagination links both have to come out stable.
type Selection struct {
	keys   []string
	values map[string][]string
}

func NewSelection() *Selection {
	return &Selection{values: map[string][]string{}}
}

// Add records one raw key=value pair. Empty values are dropped silently.
func (s *Selection) Add(key, value string) {
	if key == "" || value == "" {
		return
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = append(s.values[key], value)
}

func (s *Selection) IsEmpty() bool {
	return len(s.keys) == 0
}

// Values exposes the raw selection for rendering active filters.
func (s *Selection) Values() map[string][]string {
	return s.values
}

// Has reports whether a specific key=value pair is selected.
func (s *Selection) Has(key, value string) bool {
	for _, v := range s.values[key] {
		if v == value {
			return true
		}
	}
	return false
}

// QueryString re-encodes the selection for pagination links, preserving the
// original order.
func (s *Selection) QueryString() string {
	var sb strings.Builder
	for _, key := range s.keys {
		for _, value := range s.values[key] {
			if sb.Len() > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(url.QueryEscape(key))
			sb.WriteByte('=')
			sb.WriteString(url.QueryEscape(value))
		}
	}
	return sb.String()
}

// BuildFilter translates the selection into the catalog service's filter
// syntax:
//
//	price=10.00-25.00&price=50.00- -> (price >= 10.0 AND price < 25.0) OR (price >= 50.0)
//	brands=Acme&brands=Generic     -> brands: ANY("Acme", "Generic")
//
// Range values on numeric keys are lower-inclusive, upper-exclusive; either
// side may be empty. Values that do not parse are skipped; a key left with no
// usable values contributes nothing. Per-key clauses are joined with AND.
func (s *Selection) BuildFilter() string {
	var clauses []string
	for _, key := range s.keys {
		var clause string
		if numericKeys[key] {
			clause = buildRangeClause(key, s.values[key])
		} else {
			clause = buildTextClause(key, s.values[key])
		}
		if clause != "" {
			clauses = append(clauses, clause)
		}
	}
	return strings.Join(clauses, " AND ")
}

func buildRangeClause(key string, raws []string) string {
	var ranges []string
	for _, raw := range raws {
		if r, ok := parseRange(key, raw); ok {
			ranges = append(ranges, r)
		}
	}
	return strings.Join(ranges, " OR ")
}

// parseRange turns "min-max" into a parenthesized comparison pair. A missing
// side drops its comparison; a side that is present but not a number poisons
// the whole value.
func parseRange(key, raw string) (string, bool) {
	minPart, maxPart, found := strings.Cut(raw, "-")
	if !found {
		return "", false
	}
	minPart = strings.TrimSpace(minPart)
	maxPart = strings.TrimSpace(maxPart)
	if minPart == "" && maxPart == "" {
		return "", false
	}

	var parts []string
	if minPart != "" {
		minVal, err := strconv.ParseFloat(minPart, 64)
		if err != nil {
			return "", false
		}
		parts = append(parts, fmt.Sprintf("%s >= %s", key, formatBound(minVal)))
	}
	if maxPart != "" {
		maxVal, err := strconv.ParseFloat(maxPart, 64)
		if err != nil {
			return "", false
		}
		parts = append(parts, fmt.Sprintf("%s < %s", key, formatBound(maxVal)))
	}
	return "(" + strings.Join(parts, " AND ") + ")", true
}

func buildTextClause(key string, raws []string) string {
	if len(raws) == 0 {
		return ""
	}
	quoted := make([]string, len(raws))
	for i, raw := range raws {
		quoted[i] = strconv.Quote(raw)
	}
	return fmt.Sprintf("%s: ANY(%s)", key, strings.Join(quoted, ", "))
}

// formatBound prints whole numbers with a trailing .0 so 10 renders as 10.0,
// matching how the filter values have always been written upstream.
func formatBound(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
