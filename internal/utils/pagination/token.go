package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const (
	tokenPrefix  = "off"
	DefaultLimit = 50
	MaxLimit     = 500
)

// EncodeOffsetToken creates an opaque token pointing at the given offset of a stable listing.
func EncodeOffsetToken(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf("%s|%d", tokenPrefix, offset)))
}

// DecodeOffsetToken parses a token produced by EncodeOffsetToken. An empty token means offset 0.
func DecodeOffsetToken(token string) (int, error) {
	if token == "" {
		return 0, nil
	}
	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decoded), "|", 2)
	if len(parts) != 2 || parts[0] != tokenPrefix {
		return 0, fmt.Errorf("invalid pagination token format (split)")
	}
	offset, err := strconv.Atoi(parts[1])
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid pagination token format (offset)")
	}
	return offset, nil
}

// NormalizeLimit clamps a requested page size into [1, MaxLimit]; zero selects DefaultLimit.
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// Page cuts one page out of items starting at token. next is empty on the last page.
func Page[T any](items []T, limit int, token string) (page []T, next string, err error) {
	offset, err := DecodeOffsetToken(token)
	if err != nil {
		return nil, "", err
	}
	limit = NormalizeLimit(limit)
	if offset >= len(items) {
		return []T{}, "", nil
	}
	end := offset + limit
	if end < len(items) {
		next = EncodeOffsetToken(end)
	} else {
		end = len(items)
	}
	return items[offset:end], next, nil
}
