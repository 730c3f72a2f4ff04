package codec

import (
	"strconv"
	"strings"

	"hypermesh/internal/domain"
)

// EncodeMessage maps each character of text to its 8-bit binary
// representation, most significant bit first, with groups separated by a
// single space. Only single-byte-representable characters are accepted;
// anything else fails with EncodingError.
func EncodeMessage(text string) (string, error) {
	if text == "" {
		return "", nil
	}

	groups := make([]string, 0, len(text))
	for _, r := range text {
		if r > 0xFF {
			return "", &domain.EncodingError{
				Input:  string(r),
				Reason: "character outside single-byte range",
			}
		}
		var b strings.Builder
		for bit := 7; bit >= 0; bit-- {
			if r&(1<<bit) != 0 {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		groups = append(groups, b.String())
	}

	return strings.Join(groups, " "), nil
}

// DecodeMessage splits binary on whitespace into 8-bit groups, parses each
// as an unsigned integer, and maps it back to its character. It is the
// exact inverse of EncodeMessage: DecodeMessage(EncodeMessage(s)) == s for
// every single-byte-representable s.
func DecodeMessage(binary string) (string, error) {
	var b strings.Builder
	for _, group := range strings.Fields(binary) {
		if len(group) != 8 {
			return "", &domain.EncodingError{
				Input:  group,
				Reason: "binary group is not 8 bits",
			}
		}
		value, err := strconv.ParseUint(group, 2, 8)
		if err != nil {
			return "", &domain.EncodingError{
				Input:  group,
				Reason: "not a valid binary group",
			}
		}
		b.WriteRune(rune(value))
	}

	return b.String(), nil
}
