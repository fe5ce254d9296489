// Package chroma2tcell turns chroma token streams into tview color tags.
package chroma2tcell

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/rivo/tview"
)

var getStyle = styles.Get

var getFallbackStyle = func() *chroma.Style {
	return styles.Fallback
}

var matchLexer = lexers.Match

// Match picks a lexer by file name. Unknown names get the plain text lexer.
func Match(fileName string) chroma.Lexer {
	if lexer := matchLexer(fileName); lexer != nil {
		return lexer
	}
	return lexers.Fallback
}

// Colorize tokenises text and wraps every styled token in a [#rrggbb]...[-] tag.
// Token values are escaped so brackets in the source stay literal.
func Colorize(text, styleName string, lexer chroma.Lexer) (string, error) {
	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return "", err
	}

	style := getStyle(styleName)
	if style == nil {
		style = getFallbackStyle()
	}

	var sb strings.Builder
	for _, token := range iterator.Tokens() {
		value := tview.Escape(token.Value)
		entry := style.Get(token.Type)
		if entry.Colour.IsSet() {
			sb.WriteString("[" + entry.Colour.String() + "]")
			sb.WriteString(value)
			sb.WriteString("[-]")
			continue
		}
		sb.WriteString(value)
	}

	return sb.String(), nil
}
