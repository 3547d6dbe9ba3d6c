package common

import (
	"encoding/hex"
	"strings"
)

const (
	hexPrefix = "0x"

	// MethodSelectorLength is the length of a 0x prefixed 4 bytes method selector
	MethodSelectorLength = len(hexPrefix) + 8
)

// NormalizeHex trims, lowercases and ensures the 0x prefix. Empty input stays empty.
func NormalizeHex(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, hexPrefix) {
		s = hexPrefix + s
	}
	return s
}

// IsMethodSelector tells whether s is a normalized 4 bytes selector like 0xdeadbeef
func IsMethodSelector(s string) bool {
	if len(s) != MethodSelectorLength || !strings.HasPrefix(s, hexPrefix) {
		return false
	}
	_, err := hex.DecodeString(s[len(hexPrefix):])
	return err == nil
}
