package document

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeTXT reads UTF-8 (or BOM-marked UTF-16) text, replacing undecodable bytes
// with U+FFFD instead of failing.
func decodeTXT(data []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())

	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}

	return string(out), nil
}
