package codegen

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sick-lang/sick65/ast"
)

func TestHexFormatting(t *testing.T) {
	require.Equal(t, "$00", hexByte(0))
	require.Equal(t, "$ff", hexByte(255))
	require.Equal(t, "$34", hexByte(0x1234)) // truncates to the low byte

	require.Equal(t, "$0801", hexWord(0x0801))
	require.Equal(t, "$0002", hexWord(2))

	require.Equal(t, "$00", hexInt(0))
	require.Equal(t, "$ff", hexInt(255))
	require.Equal(t, "$0100", hexInt(256))
	require.Equal(t, "$ffff", hexInt(65535))
}

func TestEncodeString(t *testing.T) {
	testCases := []struct {
		name        string
		value       string
		screencodes bool
		want        string
	}{
		{"plain", "hello world", false, `"hello world"`},
		{"plain screencodes", "hello world", true, `"hello world"`},
		{"braces escape", "a{b}c", false, `"a", 123, "b", 125, "c"`},
		{"newline token", "one\ntwo", false, `"one{cr}two"`},
		{"clear and down", "\fx\r", false, `"{clear}x{down}"`},
		{"unknown control", "a\x01b", false, `"a", 1, "b"`},
		{"screencode control numeric", "a\nb", true, `"a", 10, "b"`},
		{"high code point", "aéb", false, `"a", 233, "b"`},
		{"single screencode char", "Q", true, "'Q'"},
		{"single screencode control", "\n", true, "10"},
		{"single char default charset", "Q", false, `"Q"`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, encodeString(tc.value, tc.screencodes))
		})
	}
}

func TestOrDash(t *testing.T) {
	require.Equal(t, "-", orDash(""))
	require.Equal(t, "A", orDash("A"))
}

func TestEmitStringVar(t *testing.T) {
	testCases := []struct {
		name string
		v    *ast.VarDef
		want string
	}{
		{
			name: "zero terminated",
			v:    &ast.VarDef{Name: "msg", Type: ast.String, StrValue: "hi"},
			want: "msg\n\t\t.null  \"hi\"\n",
		},
		{
			name: "length prefixed",
			v:    &ast.VarDef{Name: "msg", Type: ast.StringP, StrValue: "hi"},
			want: "msg\n\t\t.ptext  \"hi\"\n",
		},
		{
			name: "screencoded",
			v:    &ast.VarDef{Name: "msg", Type: ast.StringS, StrValue: "hi"},
			want: ".enc  'screen'\nmsg\n\t\t.null  \"hi\"\n.enc  'none'\n",
		},
		{
			name: "screencoded length prefixed",
			v:    &ast.VarDef{Name: "msg", Type: ast.StringPS, StrValue: "hi"},
			want: ".enc  'screen'\nmsg\n\t\t.ptext  \"hi\"\n.enc  'none'\n",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			g := &Generator{out: bufio.NewWriter(&buf)}
			g.emitStringVar(tc.v)
			require.NoError(t, g.out.Flush())
			require.Equal(t, tc.want, buf.String())
		})
	}
}
