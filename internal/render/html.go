package render

import (
	"bytes"
	"html/template"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// HTMLCode highlights code as an inline-styled <pre> block. On failure it
// falls back to escaped plain text.
func HTMLCode(code, theme string) template.HTML {
	lexer := lexers.Get(CodeLanguage)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	if theme == "" {
		theme = DefaultTheme
	}
	style := styles.Get(theme)
	if style == nil {
		style = styles.Fallback
	}

	formatter := chromahtml.New(chromahtml.TabWidth(2))

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return plainHTML(code)
	}
	var b bytes.Buffer
	if err := formatter.Format(&b, style, iterator); err != nil {
		return plainHTML(code)
	}
	return template.HTML(b.String())
}

func plainHTML(code string) template.HTML {
	return template.HTML("<pre>" + template.HTMLEscapeString(code) + "</pre>")
}
