// Copyright © 2025 Texelmark contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package termfmt

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/framegrace/texelmark/fencelang"
)

const defaultStyleName = "catppuccin-mocha"

// chromaStyle resolves a style name to a Chroma style, falling back to
// the default.
func chromaStyle(name string) *chroma.Style {
	if name == "" {
		name = defaultStyleName
	}
	return styles.Get(name)
}

// getLexer resolves a lexer: the fence's info string first, then
// content-based inference (enry before Chroma's Analyse, which keys
// mostly off filenames).
func getLexer(name string, body []string) chroma.Lexer {
	if name != "" {
		if l := lexers.Get(name); l != nil {
			return l
		}
	}
	if r := fencelang.Infer(body); r.Name != "" {
		if l := lexers.Get(r.Name); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(strings.Join(body, "\n")); l != nil {
		return l
	}
	return lexers.Fallback
}

// highlight syntax-colors a fence body, one output line per input line.
// Escapes never span lines so later line-oriented handling stays safe.
func highlight(body []string, lang string, style *chroma.Style) []string {
	if len(body) == 0 {
		return nil
	}

	lexer := chroma.Coalesce(getLexer(lang, body))
	text := strings.Join(body, "\n")

	tokens, err := chroma.Tokenise(lexer, nil, text)
	if err != nil {
		return body
	}

	baseColour := style.Get(chroma.Text).Colour

	out := make([]string, 1, len(body))
	var sb strings.Builder
	flush := func() {
		out[len(out)-1] = sb.String()
		sb.Reset()
		out = append(out, "")
	}

	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		sgr := tokenANSI(style.Get(tok.Type), baseColour)
		for i, part := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				flush()
			}
			if part == "" {
				continue
			}
			if sgr == "" {
				sb.WriteString(part)
			} else {
				sb.WriteString(sgr)
				sb.WriteString(part)
				sb.WriteString(ansiReset)
			}
		}
	}
	out[len(out)-1] = sb.String()

	if len(out) > len(body) {
		out = out[:len(body)]
	}
	return out
}

// tokenANSI builds the SGR sequence for a style entry. Tokens whose
// color matches the style's base text color keep the terminal default.
func tokenANSI(entry chroma.StyleEntry, baseColour chroma.Colour) string {
	var sb strings.Builder
	if entry.Bold == chroma.Yes {
		sb.WriteString(ansiBold)
	}
	if entry.Italic == chroma.Yes {
		sb.WriteString("\x1b[3m")
	}
	if entry.Underline == chroma.Yes {
		sb.WriteString("\x1b[4m")
	}
	if entry.Colour.IsSet() && entry.Colour != baseColour {
		fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm",
			entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue())
	}
	return sb.String()
}
