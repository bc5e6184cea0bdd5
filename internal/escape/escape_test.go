// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape_test

import (
	"testing"

	"github.com/creachadair/evtree/internal/escape"
	"go4.org/mem"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", `""`},
		{"abc", `"abc"`},
		{"a\"b", `"a\"b"`},
		{`a\b`, `"a\\b"`},
		{"tab\there\n", `"tab\there\n"`},
		{"\x01\x1f", `"\u0001\u001f"`},
		{"café", "\"café\""},
		{"a\u2028b", `"a\u2028b"`},
		{"\xff", `"\ufffd"`},
	}
	for _, tc := range tests {
		if got := string(escape.Quote(mem.S(tc.input))); got != tc.want {
			t.Errorf("Quote(%q): got %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestAppendQuote(t *testing.T) {
	got := escape.AppendQuote([]byte("key: "), mem.S("v"))
	if string(got) != `key: "v"` {
		t.Errorf("AppendQuote: got %q", got)
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{`""`, ""},
		{`"abc"`, "abc"},
		{`"a\"b\\c\/d"`, `a"b\c/d`},
		{`"\b\f\n\r\t"`, "\b\f\n\r\t"},
		{`"\u00e9"`, "é"},
		{`"\ud83d\ude00"`, "\U0001F600"},
		{`"\q"`, "�"},
		{`"\uzzzz"`, "�"},
	}
	for _, tc := range tests {
		got, err := escape.Unquote(mem.S(tc.input))
		if err != nil {
			t.Errorf("Unquote(%s): unexpected error: %v", tc.input, err)
		} else if string(got) != tc.want {
			t.Errorf("Unquote(%s): got %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestUnquoteErrors(t *testing.T) {
	for _, input := range []string{``, `"`, `abc`, `"abc`, `"\"`, `"\u12"`} {
		got, err := escape.Unquote(mem.S(input))
		if err == nil {
			t.Errorf("Unquote(%s): got %q, want error", input, got)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{"", "plain", "a \"quoted\" \\ word", "line\nbreak\x00", "\u2029"} {
		got, err := escape.Unquote(mem.B(escape.Quote(mem.S(s))))
		if err != nil {
			t.Fatalf("Unquote: unexpected error: %v", err)
		}
		if string(got) != s {
			t.Errorf("Round trip %q: got %q", s, got)
		}
	}
}
