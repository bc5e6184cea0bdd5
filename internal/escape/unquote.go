// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes a byte slice containing the JSON encoding of a string,
// including its enclosing double quotation marks.
//
// Escape sequences are replaced with their unescaped equivalents, and
// surrogate pairs are combined. Invalid escapes are replaced by the Unicode
// replacement rune. Unquote reports an error if the quotation marks are
// missing or an escape sequence is incomplete.
func Unquote(src mem.RO) ([]byte, error) {
	n := src.Len()
	if n < 2 || src.At(0) != '"' || src.At(n-1) != '"' {
		return nil, errors.New("missing quotations")
	}
	src = src.Slice(1, n-1)

	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dec, src), nil
	}

	for i >= 0 {
		dec = mem.Append(dec, src.SliceTo(i))

		// Decode the rune after the escape to figure out what to substitute.
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n++
		}
		src = src.SliceFrom(n)

		switch r {
		case '"', '\\', '/':
			dec = append(dec, byte(r))
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			v, rest, err := unicodeEscape(src)
			if err != nil {
				return nil, err
			}
			src = rest
			dec = utf8.AppendRune(dec, v)
		default:
			dec = utf8.AppendRune(dec, utf8.RuneError)
		}
		i = mem.IndexByte(src, '\\')
	}
	return mem.Append(dec, src), nil
}

// unicodeEscape decodes the hex digits of a \u escape at the front of src,
// combining a UTF-16 surrogate pair if one follows. It returns the rune and
// the remainder of src.
func unicodeEscape(src mem.RO) (rune, mem.RO, error) {
	if src.Len() < 4 {
		return 0, src, errors.New("incomplete Unicode escape")
	}
	v, err := parseHex(src.SliceTo(4))
	src = src.SliceFrom(4)
	if err != nil {
		return utf8.RuneError, src, nil
	}
	r := rune(v)
	if utf16.IsSurrogate(r) && src.Len() >= 6 && src.At(0) == '\\' && src.At(1) == 'u' {
		if lo, err := parseHex(src.Slice(2, 6)); err == nil {
			if c := utf16.DecodeRune(r, rune(lo)); c != utf8.RuneError {
				return c, src.SliceFrom(6), nil
			}
		}
	}
	return r, src, nil
}

func parseHex(data mem.RO) (int64, error) {
	var v int64
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += int64(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += int64(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += int64(b - 'A' + 10)
		} else {
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
