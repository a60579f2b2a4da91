package scene

import (
	"strconv"
	"strings"
)

// This file implements the lexical parts shared by
// the attribute parsers: numbers and lists of numbers.

func parseFloat(s string, bitSize int) (float64, error) {
	val, err := strconv.ParseFloat(strings.TrimSpace(s), bitSize)
	return val, err
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' }

func trimSeparator(s string) string {
	s = strings.TrimLeft(s, " \t\n\r\f")
	if len(s) > 0 && s[0] == ',' {
		s = strings.TrimLeft(s[1:], " \t\n\r\f")
	}
	return s
}

// scanNumber reads the number at the start of s, after
// optional whitespace and at most one comma, and returns the
// remaining input.
// Following SVG, "1-2" and "1.5.5" are read as two numbers.
func scanNumber(s string) (f float64, rest string, ok bool) {
	s = trimSeparator(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, s, false
	}
	// exponent, only when followed by a digit (so that "1em" is not read as an exponent)
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, s, false
	}
	return f, s[i:], true
}

// scanFlag reads a single '0' or '1', as used by arc commands.
func scanFlag(s string) (flag bool, rest string, ok bool) {
	s = trimSeparator(s)
	if len(s) == 0 || (s[0] != '0' && s[0] != '1') {
		return false, s, false
	}
	return s[0] == '1', s[1:], true
}

// parseNumberList reads a list of numbers separated by
// whitespace and/or commas.
func parseNumberList(s string) ([]float64, error) {
	var out []float64
	for {
		s = trimSeparator(s)
		if s == "" {
			return out, nil
		}
		f, rest, ok := scanNumber(s)
		if !ok {
			return out, errParamMismatch
		}
		out = append(out, f)
		s = rest
	}
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
}

// readFraction reads a number, or a percentage converted to a fraction.
func readFraction(v string) (f float64, err error) {
	v = strings.TrimSpace(v)
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err = parseFloat(v, 64)
	f /= d
	return
}
