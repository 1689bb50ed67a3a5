package prompt

import (
	"regexp"
	"strings"
)

// placeholderPattern matches both token syntaxes in one pass: the canonical
// {{NAME}} form used by the shipped templates, and the legacy single-brace
// {name} form still found in older template directories. A single pass means
// substituted values are never re-scanned for tokens.
var placeholderPattern = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}|\{([A-Za-z0-9_]+)\}`)

// Render substitutes named placeholders into a template. Placeholder names
// are matched case-insensitively against the vars map keys. Unknown
// placeholders are left as literal text; Render never fails.
func Render(template string, vars map[string]string) string {
	if len(vars) == 0 {
		return template
	}

	// Normalize lookup to upper case so {{TITLE}} and {title} hit the same var.
	normalized := make(map[string]string, len(vars))
	for k, v := range vars {
		normalized[strings.ToUpper(k)] = v
	}

	return placeholderPattern.ReplaceAllStringFunc(template, func(token string) string {
		name := strings.Trim(token, "{}")
		if v, ok := normalized[strings.ToUpper(name)]; ok {
			return v
		}
		return token
	})
}

// OrFallback returns value when non-empty, otherwise a bracketed fallback so
// a rendered prompt stays self-explanatory when copied before its inputs
// exist (e.g. "[No Phase 1 output yet]").
func OrFallback(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
