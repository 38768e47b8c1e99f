package core

import (
	"crypto/rand"
	"fmt"
	"strings"
)

const (
	guidAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	guidLength   = 8
)

// GenerateGUID creates a short random identifier with the given prefix,
// e.g. "msg-k29dh3aq".
func GenerateGUID(prefix string) (string, error) {
	prefix = strings.TrimSuffix(prefix, "-")

	buf := make([]byte, guidLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate guid: %w", err)
	}

	id := make([]byte, guidLength)
	for i := range buf {
		id[i] = guidAlphabet[int(buf[i])%len(guidAlphabet)]
	}

	if prefix == "" {
		return string(id), nil
	}
	return prefix + "-" + string(id), nil
}

// ShortID trims a guid to a display prefix, dropping the type prefix.
func ShortID(guid string, length int) string {
	base := guid
	if idx := strings.IndexByte(base, '-'); idx >= 0 {
		base = base[idx+1:]
	}
	if length <= 0 {
		return ""
	}
	if length > len(base) {
		length = len(base)
	}
	return base[:length]
}
