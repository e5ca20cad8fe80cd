package sprintf

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Format substitutes printf-style directives in template with values
// from args. Malformed directives pass through verbatim without
// consuming arguments. A non-finite width or precision pulled from the
// argument list via * is a fatal error.
func Format(template string, args ...any) (string, error) {
	s := &state{template: template, args: args}
	if err := s.scan(); err != nil {
		return "", err
	}
	return s.out.String(), nil
}

// MustFormat is Format for call sites with known-good templates; it
// panics on error.
func MustFormat(template string, args ...any) string {
	out, err := Format(template, args...)
	if err != nil {
		panic(err)
	}
	return out
}

type state struct {
	template string
	pos      int
	args     []any
	cursor   int
	out      strings.Builder
}

type directive struct {
	argIndex int // 1-based explicit index, 0 when implicit
	minus    bool
	plus     bool
	space    bool
	zero     bool
	hash     bool
	width    int
	hasWidth bool
	prec     int
	hasPrec  bool
	verb     byte
}

func (s *state) scan() error {
	for s.pos < len(s.template) {
		ch := s.template[s.pos]
		if ch != '%' {
			s.out.WriteByte(ch)
			s.pos++
			continue
		}
		if s.pos+1 < len(s.template) && s.template[s.pos+1] == '%' {
			s.out.WriteByte('%')
			s.pos += 2
			continue
		}
		if err := s.directive(); err != nil {
			return err
		}
	}
	return nil
}

func (s *state) peek() byte {
	if s.pos >= len(s.template) {
		return 0
	}
	return s.template[s.pos]
}

func (s *state) digits() (int, bool) {
	start := s.pos
	for s.pos < len(s.template) && s.template[s.pos] >= '0' && s.template[s.pos] <= '9' {
		s.pos++
	}
	if s.pos == start {
		return 0, false
	}
	n, err := strconv.Atoi(s.template[start:s.pos])
	if err != nil {
		// Overflowing digit runs rewind so the directive is treated as
		// malformed rather than silently losing its width.
		s.pos = start
		return 0, false
	}
	return n, true
}

func (s *state) nextArg() any {
	v := s.argAt(s.cursor + 1)
	s.cursor++
	return v
}

// argAt returns the 1-based argument n, or nil when out of range.
func (s *state) argAt(n int) any {
	if n < 1 || n > len(s.args) {
		return nil
	}
	return s.args[n-1]
}

func (s *state) directive() error {
	start := s.pos
	savedCursor := s.cursor
	s.pos++ // consume '%'

	var d directive

	// Explicit argument index: digits followed by '$'. Plain digits
	// here are a width, so rewind if the '$' is missing.
	mark := s.pos
	if n, ok := s.digits(); ok && s.peek() == '$' {
		s.pos++
		d.argIndex = n
	} else {
		s.pos = mark
	}

	s.flags(&d)

	if s.peek() == '*' {
		s.pos++
		v, err := s.starValue()
		if err != nil {
			return err
		}
		// A negative width flips to left-justification.
		if v < 0 {
			d.minus = true
			v = -v
		}
		d.width, d.hasWidth = v, true
	} else if n, ok := s.digits(); ok {
		d.width, d.hasWidth = n, true
	}

	if s.peek() == '.' {
		s.pos++
		if s.peek() == '*' {
			s.pos++
			v, err := s.starValue()
			if err != nil {
				return err
			}
			if v >= 0 {
				d.prec, d.hasPrec = v, true
			}
		} else if n, ok := s.digits(); ok {
			d.prec, d.hasPrec = n, true
		} else {
			d.prec, d.hasPrec = 0, true
		}
	}

	verb := s.peek()
	if verb == 0 || !isVerb(verb) {
		// Unrecognized directive: emit the scanned text untouched and
		// leave the argument cursor where it was.
		s.cursor = savedCursor
		end := s.pos
		if verb != 0 {
			end++
			s.pos++
		}
		s.out.WriteString(s.template[start:end])
		return nil
	}
	s.pos++
	d.verb = verb
	s.render(d)
	return nil
}

func (s *state) flags(d *directive) {
	for {
		switch s.peek() {
		case '-':
			d.minus = true
		case '+':
			d.plus = true
		case ' ':
			d.space = true
		case '0':
			d.zero = true
		case '#':
			d.hash = true
		default:
			return
		}
		s.pos++
	}
}

// starValue resolves a '*' or '*N$' width/precision from the argument
// list. Non-finite values cannot be sized and are fatal.
func (s *state) starValue() (int, error) {
	mark := s.pos
	var v any
	if n, ok := s.digits(); ok && s.peek() == '$' {
		s.pos++
		v = s.argAt(n)
	} else {
		s.pos = mark
		v = s.nextArg()
	}
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("sprintf: non-finite width or precision argument %v in %q", v, s.template)
	}
	return int(f), nil
}

func isVerb(b byte) bool {
	return strings.IndexByte("scboxXuidfFeEgGpPn", b) >= 0
}

func (s *state) render(d directive) {
	if d.verb == 'n' {
		// Consumes its argument slot and produces nothing.
		if d.argIndex == 0 {
			s.nextArg()
		}
		return
	}

	var arg any
	if d.argIndex > 0 {
		arg = s.argAt(d.argIndex)
	} else {
		arg = s.nextArg()
	}

	var prefix, body string
	ok := true
	switch d.verb {
	case 's':
		body = truncate(stringify(arg), d)
	case 'c':
		if f, fok := toFloat(arg); fok && !math.IsNaN(f) && !math.IsInf(f, 0) {
			body = truncate(string(rune(int64(f))), d)
		} else {
			ok = false
		}
	case 'd', 'i':
		prefix, body, ok = formatInt(arg, d)
	case 'b', 'o', 'u', 'x', 'X':
		prefix, body = formatUnsigned(arg, d)
	case 'f', 'F', 'e', 'E', 'g', 'G':
		prefix, body, ok = formatFloat(arg, d)
	case 'p', 'P':
		prefix, body, ok = formatSigFloat(arg, d)
	}
	if !ok {
		return
	}
	s.out.WriteString(padded(prefix, body, d))
}

func formatInt(arg any, d directive) (string, string, bool) {
	n, ok := toInt(arg)
	if !ok {
		return "", "", false
	}
	digits := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign = "-"
		digits = digits[1:]
	} else if d.plus {
		sign = "+"
	} else if d.space {
		sign = " "
	}
	if d.hasPrec && len(digits) < d.prec {
		digits = strings.Repeat("0", d.prec-len(digits)) + digits
	}
	return sign, digits, true
}

func formatUnsigned(arg any, d directive) (string, string) {
	u := toUint32(arg)
	var base int
	var prefix string
	switch d.verb {
	case 'b':
		base, prefix = 2, "0b"
	case 'o':
		base, prefix = 8, "0"
	case 'u':
		base = 10
	case 'x', 'X':
		base, prefix = 16, "0x"
	}
	if !d.hash || u == 0 {
		prefix = ""
	}
	body := strconv.FormatUint(uint64(u), base)
	if d.verb == 'X' {
		prefix = strings.ToUpper(prefix)
		body = strings.ToUpper(body)
	}
	return prefix, body
}

func formatFloat(arg any, d directive) (string, string, bool) {
	f, ok := toFloat(arg)
	if !ok {
		return "", "", false
	}
	var verb byte
	prec := 6
	switch d.verb {
	case 'e', 'E':
		verb = 'e'
	case 'f', 'F':
		verb = 'f'
	case 'g', 'G':
		verb = 'g'
		prec = -1
	}
	if d.hasPrec {
		prec = d.prec
	}
	body := strconv.FormatFloat(f, verb, prec, 64)
	if d.verb == 'E' || d.verb == 'G' {
		body = strings.ToUpper(body)
	}
	return splitSign(body, d)
}

// formatSigFloat renders like %g but never shows more digits than the
// input actually carries, so 1.5 stays "1.5" under %.6p instead of
// growing trailing zeros.
func formatSigFloat(arg any, d directive) (string, string, bool) {
	f, ok := toFloat(arg)
	if !ok {
		return "", "", false
	}
	sig := significantDigits(arg)
	prec := 6
	if d.hasPrec {
		prec = d.prec
	}
	if prec < 1 {
		prec = 1
	}
	if sig < prec {
		prec = sig
	}
	body := strconv.FormatFloat(f, 'g', prec, 64)
	if d.verb == 'P' {
		body = strings.ToUpper(body)
	}
	return splitSign(body, d)
}

// splitSign separates a leading minus (or applies +/space flags) so
// width zero-padding lands between the sign and the digits.
func splitSign(body string, d directive) (string, string, bool) {
	sign := ""
	if strings.HasPrefix(body, "-") {
		sign = "-"
		body = body[1:]
	} else if d.plus {
		sign = "+"
	} else if d.space {
		sign = " "
	}
	return sign, body, true
}

func truncate(str string, d directive) string {
	if !d.hasPrec {
		return str
	}
	r := []rune(str)
	if len(r) > d.prec {
		return string(r[:d.prec])
	}
	return str
}

func padded(prefix, body string, d directive) string {
	out := prefix + body
	if !d.hasWidth {
		return out
	}
	n := utf8.RuneCountInString(out)
	if n >= d.width {
		return out
	}
	fill := d.width - n
	switch {
	case d.minus:
		return out + strings.Repeat(" ", fill)
	case d.zero:
		return prefix + strings.Repeat("0", fill) + body
	default:
		return strings.Repeat(" ", fill) + out
	}
}

// significantDigits counts the mantissa digits present in the value's
// literal form, ignoring leading zeros and any exponent.
func significantDigits(v any) int {
	str := stringify(v)
	if i := strings.IndexAny(str, "eE"); i >= 0 {
		str = str[:i]
	}
	count, seen := 0, false
	for _, r := range str {
		switch {
		case r >= '1' && r <= '9':
			seen = true
			count++
		case r == '0' && seen:
			count++
		}
	}
	if count == 0 {
		count = 1
	}
	return count
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case error:
		return t.Error()
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// toInt applies base-10 integer parsing: numeric values truncate
// toward zero, strings contribute their leading integer prefix, and
// everything else fails silently.
func toInt(v any) (int64, bool) {
	switch t := v.(type) {
	case string:
		return parseIntPrefix(t)
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint:
		return int64(t), true
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		return int64(t), true
	case float32:
		return floatToInt(float64(t))
	case float64:
		return floatToInt(t)
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(math.Trunc(f)), true
}

func parseIntPrefix(str string) (int64, bool) {
	str = strings.TrimSpace(str)
	i := 0
	if i < len(str) && (str[i] == '+' || str[i] == '-') {
		i++
	}
	j := i
	for j < len(str) && str[j] >= '0' && str[j] <= '9' {
		j++
	}
	if j == i {
		return 0, false
	}
	n, err := strconv.ParseInt(str[:j], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// toUint32 follows scripting-host ToUint32 coercion: truncate, wrap
// modulo 2^32, and map anything non-numeric to zero.
func toUint32(v any) uint32 {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	t := math.Trunc(f)
	m := math.Mod(t, 1<<32)
	if m < 0 {
		m += 1 << 32
	}
	return uint32(m)
}
