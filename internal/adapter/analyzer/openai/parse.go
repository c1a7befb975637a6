package openai

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/bnema/clipr/internal/domain"
)

// parseWindows extracts candidate windows from a model reply. Anything it
// cannot understand yields no windows.
func parseWindows(content string) []domain.ClipWindow {
	var data any
	if err := json.Unmarshal([]byte(stripFences(content)), &data); err != nil {
		return nil
	}

	var items []any
	switch v := data.(type) {
	case []any:
		items = v
	case map[string]any:
		items = windowList(v)
	}

	out := make([]domain.ClipWindow, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if w, ok := windowFromMap(m); ok {
			out = append(out, w)
		}
	}
	return out
}

func stripFences(content string) string {
	s := strings.TrimSpace(content)
	for _, fence := range []string{"```json", "```"} {
		if i := strings.Index(s, fence); i >= 0 {
			rest := s[i+len(fence):]
			if j := strings.Index(rest, "```"); j >= 0 {
				rest = rest[:j]
			}
			return strings.TrimSpace(rest)
		}
	}
	return s
}

func windowList(m map[string]any) []any {
	for _, key := range []string{"clips", "segments"} {
		if list, ok := m[key].([]any); ok {
			return list
		}
	}
	_, hasStart := m["start_time"]
	_, hasEnd := m["end_time"]
	_, hasScore := m["viral_score"]
	if hasStart && hasEnd && hasScore {
		return []any{m}
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if list, ok := m[k].([]any); ok && len(list) > 0 {
			if _, isObj := list[0].(map[string]any); isObj {
				return list
			}
		}
	}
	return nil
}

func windowFromMap(m map[string]any) (domain.ClipWindow, bool) {
	start, end, ok := bounds(m)
	if !ok {
		return domain.ClipWindow{}, false
	}
	score, _ := number(m["viral_score"])
	return domain.ClipWindow{
		StartSeconds:    start,
		EndSeconds:      end,
		ViralScore:      score,
		CriteriaMatched: stringList(m["criteria_matched"]),
		Reasoning:       text(m["reasoning"]),
		SuggestedTitle:  text(m["suggested_title"]),
		KeyQuote:        text(m["key_quote"]),
	}, true
}

// bounds prefers start_seconds/end_seconds and falls back to the
// start_time/end_time clock strings when the numeric pair is missing or
// left at the template's zero values.
func bounds(m map[string]any) (start, end float64, ok bool) {
	start, okS := number(m["start_seconds"])
	end, okE := number(m["end_seconds"])
	if okS && okE && end > start {
		return start, end, true
	}
	start, okS = clock(m["start_time"])
	end, okE = clock(m["end_time"])
	return start, end, okS && okE
}

func clock(v any) (float64, bool) {
	switch c := v.(type) {
	case string:
		return parseClock(c)
	case float64:
		return c, true
	}
	return 0, false
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

// parseClock converts MM:SS or HH:MM:SS (seconds may be fractional).
func parseClock(s string) (float64, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	var total float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v < 0 {
			return 0, false
		}
		if i < len(parts)-1 && v != float64(int(v)) {
			return 0, false
		}
		total = total*60 + v
	}
	return total, true
}

func stringList(v any) []string {
	switch l := v.(type) {
	case []any:
		out := make([]string, 0, len(l))
		for _, item := range l {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	case string:
		var out []string
		for _, s := range strings.Split(l, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func text(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
