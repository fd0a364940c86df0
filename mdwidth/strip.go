// Copyright © 2025 Texelmark contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: mdwidth/strip.go
// Summary: Reduction of markdown fragments to their concealed display form.

package mdwidth

import "strings"

// Strip reduces a markdown fragment to the text a concealing display
// actually shows: emphasis and strikethrough wrappers are removed (the
// wrapped content stays), images collapse to their alt text, links become
// "text (url)". Inline-code spans are kept verbatim, backticks included,
// because code is never concealed. Unmatched delimiters are left alone.
func Strip(text string) string {
	if !strings.ContainsAny(text, "`*_~![") {
		return text
	}
	return stripInline(text)
}

// stripInline is a single left-to-right scan with recursion into wrapped
// content, so arbitrarily nested constructs unwrap in one call the same
// way repeated rewrite passes would.
func stripInline(text string) string {
	var out strings.Builder
	out.Grow(len(text))
	i, n := 0, len(text)

	for i < n {
		c := text[i]

		// Inline code: everything up to the closing backtick is literal.
		if c == '`' {
			if end := strings.IndexByte(text[i+1:], '`'); end >= 0 {
				out.WriteString(text[i : i+end+2])
				i += end + 2
				continue
			}
		}

		// ***triple*** / ___triple___
		if i+2 < n && (c == '*' || c == '_') && text[i+1] == c && text[i+2] == c {
			delim := text[i : i+3]
			if end := strings.Index(text[i+3:], delim); end >= 0 {
				out.WriteString(stripInline(text[i+3 : i+3+end]))
				i += end + 6
				continue
			}
		}

		// **bold** / __bold__
		if i+1 < n && (c == '*' || c == '_') && text[i+1] == c {
			delim := text[i : i+2]
			if end := strings.Index(text[i+2:], delim); end >= 0 {
				out.WriteString(stripInline(text[i+2 : i+2+end]))
				i += end + 4
				continue
			}
		}

		// *italic* / _italic_. Underscores inside a word are literal, the
		// way identifiers like max_buffer_rows must survive.
		if c == '*' || (c == '_' && (i == 0 || !isWordByte(text[i-1]))) {
			end := -1
			for j := i + 1; j < n; j++ {
				if text[j] == c {
					if c == '_' && j+1 < n && isWordByte(text[j+1]) {
						continue
					}
					end = j
					break
				}
			}
			if end > i+1 {
				out.WriteString(stripInline(text[i+1 : end]))
				i = end + 1
				continue
			}
		}

		// ~~strikethrough~~
		if i+1 < n && c == '~' && text[i+1] == '~' {
			if end := strings.Index(text[i+2:], "~~"); end >= 0 {
				out.WriteString(stripInline(text[i+2 : i+2+end]))
				i += end + 4
				continue
			}
		}

		// ![alt](url) collapses to the alt text alone.
		if c == '!' && i+1 < n && text[i+1] == '[' {
			if label, _, consumed, ok := parseLink(text[i+1:]); ok {
				out.WriteString(stripInline(label))
				i += 1 + consumed
				continue
			}
		}

		// [text](url) renders as "text (url)".
		if c == '[' {
			if label, url, consumed, ok := parseLink(text[i:]); ok {
				out.WriteString(stripInline(label))
				out.WriteString(" (")
				out.WriteString(url)
				out.WriteString(")")
				i += consumed
				continue
			}
		}

		out.WriteByte(c)
		i++
	}

	return out.String()
}

// parseLink parses a "[label](url)" construct starting at s[0] == '['.
// Nested brackets inside the label are tracked by depth.
func parseLink(s string) (label, url string, consumed int, ok bool) {
	close := findClosingBracket(s)
	if close < 0 || close+1 >= len(s) || s[close+1] != '(' {
		return "", "", 0, false
	}
	rest := s[close+2:]
	end := strings.IndexByte(rest, ')')
	if end < 0 {
		return "", "", 0, false
	}
	return s[1:close], rest[:end], close + 2 + end + 1, true
}

func findClosingBracket(text string) int {
	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
