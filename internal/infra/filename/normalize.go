// Package filename repairs original upload names that arrive mis-encoded.
//
// Repair is guesswork, so Normalize runs an ordered chain of strategies and
// returns the first confident result:
//
//  1. percent-escaped names are URL-decoded, nested escapes included
//  2. names that are not valid UTF-8 get the Latin-1 reinterpretation, kept only if CJK appears
//  3. names that look like Latin-1 mojibake of UTF-8 get the reinterpretation unconditionally
//  4. anything else is returned as is
//
// The mojibake heuristic in step 3 is an approximation: a genuinely accented
// Western name such as "Ménage.zip" also matches it. Such names survive only
// because their Latin-1 bytes are not valid UTF-8 and the step then fails.
// Escapes nested deeper than maxUnescapeRounds are only partly decoded, and
// a second Normalize call may decode them further.
package filename

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Unnamed is returned for empty input.
const Unnamed = "unnamed"

// suspectLatin are characters that show up when UTF-8 bytes are read as Latin-1.
const suspectLatin = "ÃÂÄÅÆÇÈÉÊËÌÍÎÏÐÑÒÓÔÕÖØÙÚÛÜÝÞßàáâãäåæçèéêëìíîïðñòóôõöøùúûüýþÿ"

var percentEscape = regexp.MustCompile(`%[0-9A-Fa-f]{2}`)

type strategy func(string) (string, bool)

var chain = []strategy{
	fromPercentEncoding,
	fromInvalidUTF8,
	fromLikelyMojibake,
}

// Normalize returns a best-effort human readable version of raw.
func Normalize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return Unnamed
	}
	for _, try := range chain {
		if out, ok := try(raw); ok {
			return out
		}
	}
	return raw
}

// maxUnescapeRounds bounds decoding of nested escapes such as "%2541".
const maxUnescapeRounds = 4

// fromPercentEncoding decodes until no escape is left, so Normalize stays
// idempotent on multiply-escaped names.
func fromPercentEncoding(s string) (string, bool) {
	if !percentEscape.MatchString(s) {
		return "", false
	}
	out := s
	for i := 0; i < maxUnescapeRounds && percentEscape.MatchString(out); i++ {
		next, err := url.PathUnescape(out)
		if err != nil || !utf8.ValidString(next) {
			break
		}
		out = next
	}
	if out == s {
		return "", false
	}
	return out, true
}

func fromInvalidUTF8(s string) (string, bool) {
	if utf8.ValidString(s) {
		return "", false
	}
	out, ok := reinterpretLatin1(s)
	if !ok || !containsCJK(out) {
		return "", false
	}
	return out, true
}

func fromLikelyMojibake(s string) (string, bool) {
	if !LooksMisencoded(s) {
		return "", false
	}
	return reinterpretLatin1(s)
}

// LooksMisencoded reports whether s holds Latin-1 mojibake characters and no CJK.
func LooksMisencoded(s string) bool {
	return strings.ContainsAny(s, suspectLatin) && !containsCJK(s)
}

// reinterpretLatin1 takes every character of s as one ISO-8859-1 byte and
// reads the resulting bytes as UTF-8. Bytes of s that are not valid UTF-8 are
// already single bytes and are kept verbatim.
func reinterpretLatin1(s string) (string, bool) {
	enc := charmap.ISO8859_1.NewEncoder()
	var buf []byte
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			buf = append(buf, s[0])
			s = s[1:]
			continue
		}
		b, err := enc.Bytes([]byte(s[:size]))
		if err != nil {
			return "", false
		}
		buf = append(buf, b...)
		s = s[size:]
	}
	if !utf8.Valid(buf) {
		return "", false
	}
	return string(buf), true
}

func containsCJK(s string) bool {
	for _, r := range s {
		if r >= 0x4E00 && r <= 0x9FFF {
			return true
		}
	}
	return false
}
