package validation

import (
	"strings"

	"itemtrail/internal/config"
)

// defaultRules applies when no rules are configured.
var defaultRules = []config.Rule{{PathPattern: "/items", Method: "POST"}}

// Matches reports whether any rule selects the request. Method comparison is
// case-insensitive; a pattern ending in "*" matches the path by prefix,
// otherwise the path must match exactly.
func Matches(rules []config.Rule, path, method string) bool {
	if len(rules) == 0 {
		rules = defaultRules
	}
	method = strings.ToUpper(method)
	for _, r := range rules {
		if strings.ToUpper(r.Method) != method {
			continue
		}
		if prefix, ok := strings.CutSuffix(r.PathPattern, "*"); ok {
			if strings.HasPrefix(path, prefix) {
				return true
			}
			continue
		}
		if path == r.PathPattern {
			return true
		}
	}
	return false
}
