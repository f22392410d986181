package extractor

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

func extractPlaintext(raw []byte, filename string) (string, error) {
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("unsupported binary format: %s", filename)
	}
	return strings.TrimSpace(string(raw)), nil
}
