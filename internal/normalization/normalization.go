package normalization

import (
  "strings"
)

// ParseInputString trims surrounding whitespace from free-form user input.
func ParseInputString(s string) string {
  return strings.TrimSpace(s)
}

// ParseEmail trims and lower-cases an email address so lookups and the
// unique index always see the same shape.
func ParseEmail(s string) string {
  return strings.ToLower(strings.TrimSpace(s))
}
