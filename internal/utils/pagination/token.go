package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const cursorPrefix = "id"

// EncodeCursor creates an opaque token pointing just after the record with the given ID.
// Adapters page by ID ascending.
func EncodeCursor(lastID string) string {
	if lastID == "" {
		return ""
	}
	return EncodeMultiFieldToken(cursorPrefix, lastID)
}

// DecodeCursor returns the ID encoded in a cursor. An empty token is the first page.
func DecodeCursor(token string) (string, error) {
	if token == "" {
		return "", nil
	}
	fields, err := DecodeMultiFieldToken(token)
	if err != nil {
		return "", err
	}
	if len(fields) < 2 || fields[0] != cursorPrefix {
		return "", fmt.Errorf("invalid pagination token format (fields)")
	}
	id := strings.Join(fields[1:], "|")
	if id == "" {
		return "", fmt.Errorf("invalid pagination token format (fields)")
	}
	return id, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
// This provides flexibility for different pagination strategies
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}
