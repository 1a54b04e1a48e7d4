package advisor

import "strings"

// ExtractJSONArray finds the outermost JSON array inside model output.
// Models wrap their answer in prose or code fences often enough that
// we scan for the first '[' and last ']' instead of trusting the whole
// response to be valid JSON. No side effects on failure.
func ExtractJSONArray(raw string) (string, bool) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}
