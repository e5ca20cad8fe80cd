package sprintf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_Strings(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     []any
		want     string
	}{
		{"plain text", "hello", nil, "hello"},
		{"simple substitution", "hello %s", []any{"world"}, "hello world"},
		{"width pads right-justified", "%5s", []any{"cat"}, "  cat"},
		{"minus pads left-justified", "%-5s", []any{"cat"}, "cat  "},
		{"precision truncates", "%.3s", []any{"catfish"}, "cat"},
		{"width and precision", "%5.3s", []any{"catfish"}, "  cat"},
		{"left-justified truncation", "%-5.3s", []any{"catfish"}, "cat  "},
		{"zero precision empties", "%.0s", []any{"catfish"}, ""},
		{"bare dot means zero precision", "%.s", []any{"catfish"}, ""},
		{"rune-aware truncation", "%.2s", []any{"héllo"}, "hé"},
		{"missing argument renders empty", "a%sb", nil, "ab"},
		{"bool argument", "%s", []any{true}, "true"},
		{"number argument", "%s", []any{1.5}, "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.template, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_Integers(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     []any
		want     string
	}{
		{"basic", "%d", []any{42}, "42"},
		{"i alias", "%i", []any{42}, "42"},
		{"zero pad", "%04d", []any{3}, "0003"},
		{"forced sign", "%+d", []any{3}, "+3"},
		{"space sign", "% d", []any{3}, " 3"},
		{"negative keeps sign over pad", "%04d", []any{-3}, "-003"},
		{"left-justify beats zero", "%-05d", []any{42}, "42   "},
		{"precision zero-pads digits", "%.4d", []any{7}, "0007"},
		{"float truncates toward zero", "%d", []any{3.9}, "3"},
		{"negative float truncates toward zero", "%d", []any{-3.9}, "-3"},
		{"string integer prefix", "%d", []any{"42abc"}, "42"},
		{"signed string prefix", "%d", []any{"-17px"}, "-17"},
		{"non-numeric string renders nothing", "a%db", []any{"abc"}, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.template, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_UnsignedBases(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     []any
		want     string
	}{
		{"binary", "%b", []any{5}, "101"},
		{"octal", "%o", []any{8}, "10"},
		{"decimal unsigned", "%u", []any{42}, "42"},
		{"hex lower", "%x", []any{255}, "ff"},
		{"hex upper", "%X", []any{255}, "FF"},
		{"hash hex prefix", "%#x", []any{13}, "0xd"},
		{"hash hex upper prefix", "%#X", []any{13}, "0XD"},
		{"hash binary prefix", "%#b", []any{5}, "0b101"},
		{"hash octal prefix", "%#o", []any{8}, "010"},
		{"hash suppressed for zero", "%#x", []any{0}, "0"},
		{"negative wraps modulo 2^32", "%u", []any{-1}, "4294967295"},
		{"negative hex wraps", "%x", []any{-1}, "ffffffff"},
		{"zero pad sits after prefix", "%#06x", []any{13}, "0x000d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.template, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_Floats(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     []any
		want     string
	}{
		{"fixed default precision", "%f", []any{3.14}, "3.140000"},
		{"fixed explicit precision", "%.2f", []any{3.14159}, "3.14"},
		{"zero pad with sign between", "%+08.2f", []any{3.14}, "+0003.14"},
		{"scientific", "%.3e", []any{1234.5678}, "1.235e+03"},
		{"scientific upper", "%.3E", []any{1234.5678}, "1.235E+03"},
		{"general shortest", "%g", []any{1234.5678}, "1234.5678"},
		{"general with precision", "%.3g", []any{1234.5678}, "1.23e+03"},
		{"negative zero pad", "%08.2f", []any{-3.14}, "-0003.14"},
		{"string coerces fully", "%.1f", []any{"2.5"}, "2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.template, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_SignificantDigits(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     []any
		want     string
	}{
		{"short value stays short", "%p", []any{1.5}, "1.5"},
		{"leading zeros not significant", "%p", []any{0.00123}, "0.00123"},
		{"precision still caps", "%.1p", []any{1.55}, "2"},
		{"upper variant", "%.2P", []any{12345.0}, "1.2E+04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.template, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_Chars(t *testing.T) {
	got, err := Format("%c%c%c", 99, 97, 116)
	require.NoError(t, err)
	assert.Equal(t, "cat", got)
}

func TestFormat_PercentEscape(t *testing.T) {
	got, err := Format("100%%")
	require.NoError(t, err)
	assert.Equal(t, "100%", got)

	got, err = Format("%%%d%%", 5)
	require.NoError(t, err)
	assert.Equal(t, "%5%", got)
}

func TestFormat_ExplicitArgIndex(t *testing.T) {
	got, err := Format("%2$s %1$s", "world", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)

	// Explicit indexes leave the implicit cursor untouched.
	got, err = Format("%2$s %s", "first", "second")
	require.NoError(t, err)
	assert.Equal(t, "second first", got)
}

func TestFormat_StarWidthAndPrecision(t *testing.T) {
	got, err := Format("%*d", 5, 42)
	require.NoError(t, err)
	assert.Equal(t, "   42", got)

	got, err = Format("%.*f", 2, 3.14159)
	require.NoError(t, err)
	assert.Equal(t, "3.14", got)

	// Negative width flips to left-justification.
	got, err = Format("%*d|", -5, 42)
	require.NoError(t, err)
	assert.Equal(t, "42   |", got)

	// Indexed star pulls from a fixed slot.
	got, err = Format("%1$*2$d", 7, 4)
	require.NoError(t, err)
	assert.Equal(t, "   7", got)
}

func TestFormat_NonFiniteStarIsFatal(t *testing.T) {
	_, err := Format("%*d", math.NaN(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-finite")

	_, err = Format("%.*f", math.Inf(1), 1.0)
	require.Error(t, err)
}

func TestFormat_UnrecognizedDirectives(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     []any
		want     string
	}{
		{"unknown verb passes through", "%q", []any{"x"}, "%q"},
		{"argument not consumed", "%q%s", []any{"a"}, "%qa"},
		{"trailing percent", "50%", nil, "50%"},
		{"incomplete directive at end", "%5", nil, "%5"},
		{"flags without verb", "%-+", nil, "%-+"},
		{"overflowing width passes through", "%99999999999999999999d", []any{7}, "%99999999999999999999d"},
		{"overflowing width leaves argument", "%99999999999999999999d %d", []any{7}, "%99999999999999999999d 7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.template, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_SwallowDirective(t *testing.T) {
	// %n consumes its argument slot and emits nothing.
	got, err := Format("%n%s", "eaten", "kept")
	require.NoError(t, err)
	assert.Equal(t, "kept", got)
}

func TestMustFormat(t *testing.T) {
	assert.Equal(t, "0003", MustFormat("%04d", 3))

	assert.Panics(t, func() {
		MustFormat("%*d", math.NaN(), 1)
	})
}
