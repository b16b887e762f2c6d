package validation

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"itemtrail/internal/sanitize"
)

// Kind classifies a validation failure.
type Kind int

const (
	InvalidJSON Kind = iota
	MissingOrWrongType
	LengthOutOfRange
	ForbiddenContent
)

// Error is a client-caused validation failure. Detail is the stable message
// surfaced as {"detail": ...} with HTTP 400.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	return e.Detail
}

// Validated is the sanitized payload handed to downstream handlers.
type Validated struct {
	Name string `json:"name"`
}

// ValidateBody parses and validates a raw request body. An empty body parses
// to an empty object. The name length is checked pre-sanitization, in
// characters; the forbidden-word check runs on the sanitized value.
func ValidateBody(body []byte, forbidden []string) (Validated, *Error) {
	data := map[string]interface{}{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &data); err != nil {
			return Validated{}, &Error{Kind: InvalidJSON, Detail: "Invalid JSON body"}
		}
	}

	name, ok := data["name"].(string)
	if !ok {
		return Validated{}, &Error{Kind: MissingOrWrongType, Detail: "`name` is required and must be a string"}
	}
	if n := utf8.RuneCountInString(name); n < 1 || n > 100 {
		return Validated{}, &Error{Kind: LengthOutOfRange, Detail: "`name` must be 1-100 characters long"}
	}

	clean := sanitize.Clean(name)

	low := strings.ToLower(clean)
	for _, w := range forbidden {
		if w == "" {
			continue
		}
		if strings.Contains(low, strings.ToLower(w)) {
			return Validated{}, &Error{Kind: ForbiddenContent, Detail: "Name contains forbidden content"}
		}
	}

	return Validated{Name: clean}, nil
}
