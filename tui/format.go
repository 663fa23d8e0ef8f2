// ABOUTME: Display formatting helpers for table rows and detail fields
// ABOUTME: Truncation, counts, dates, and type-erased entity field lookup
package tui

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vestryhq/vestry/models"
)

func rowIndex(i int) string {
	return strconv.Itoa(i + 1)
}

// truncate shortens s to at most max runes, ending in an ellipsis when
// anything was cut.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

func fmtCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func fmtBool(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func fmtDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return fmtDate(*t)
}

func fmtDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

// entityMap flattens an entity to its JSON object form so the detail view
// can address fields by name without knowing concrete types.
func entityMap(ent models.Entity) map[string]any {
	if ent == nil {
		return nil
	}
	raw, err := json.Marshal(ent)
	if err != nil {
		return nil
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	return obj
}

// fieldString renders one entity field for display.
func fieldString(obj map[string]any, name string) string {
	v, ok := obj[name]
	if !ok || v == nil {
		return ""
	}
	switch v := v.(type) {
	case string:
		if looksLikeTimestamp(name) {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				return fmtDateTime(t.Local())
			}
		}
		return v
	case bool:
		return fmtBool(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, it := range v {
			if s, ok := it.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "\n")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// assetList extracts a positional asset array by field name.
func assetList(obj map[string]any, name string) []string {
	v, ok := obj[name]
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func looksLikeTimestamp(name string) bool {
	return strings.HasSuffix(name, "_at")
}
