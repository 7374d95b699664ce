package codegen

import (
	"fmt"
	"strings"
	"unicode"
)

func hexByte(v int) string { return fmt.Sprintf("$%02x", v&0xff) }

func hexWord(v uint16) string { return fmt.Sprintf("$%04x", v) }

// hexInt formats a non-negative integer as a byte or word hex literal,
// whichever is smallest.
func hexInt(v int) string {
	if v < 0x100 {
		return fmt.Sprintf("$%02x", v)
	}
	return fmt.Sprintf("$%04x", v)
}

// Named placeholder tokens for the control characters the default charset
// knows by name.
var controlTokens = map[rune]string{
	'\f': "{clear}",
	'\b': "{delete}",
	'\n': "{cr}",
	'\r': "{down}",
	'\t': "{tab}",
}

// encodeString renders a string value in the assembler's quoting syntax.
// Printable characters with code points below 128 pass through literally.
// Curly braces delimit the named placeholder tokens and are therefore
// escaped as numeric codes, as is every other unrepresentable character;
// in the default charset the known control characters become their named
// tokens instead. A single-character screencode value emits as a bare
// character literal when representable, which assembles to the same byte.
func encodeString(value string, screencodes bool) string {
	runes := []rune(value)
	if len(runes) == 1 && screencodes {
		if unicode.IsPrint(runes[0]) && runes[0] < 128 {
			return fmt.Sprintf("'%c'", runes[0])
		}
		return fmt.Sprintf("%d", runes[0])
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, ch := range runes {
		switch {
		case ch == '{' || ch == '}':
			fmt.Fprintf(&b, "\", %d, \"", ch)
		case unicode.IsPrint(ch) && ch < 128:
			b.WriteRune(ch)
		case screencodes:
			fmt.Fprintf(&b, "\", %d, \"", ch)
		default:
			if tok, ok := controlTokens[ch]; ok {
				b.WriteString(tok)
			} else {
				fmt.Fprintf(&b, "\", %d, \"", ch)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
