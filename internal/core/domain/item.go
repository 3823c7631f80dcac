package domain

import (
	"strings"
	"unicode"
)

// Item is a catalog entry that can be lent out. Only its identity matters to lending.
type Item struct {
	ItemID string `json:"itemID" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Author string `json:"author" yaml:"author"`

	AuditFields `yaml:"-"`
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// IsBlank reports whether s has no visible characters.
func IsBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
