// Package htmltext converts HTML-delivered evaluation texts into the
// markdown-flavoured plain text the parser expects: bold survives as
// emphasis markers and list items as bullet lines, so the extraction
// patterns keep working on rich-text exports.
package htmltext

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Converter sanitizes and converts HTML to parser-ready text.
// Safe for concurrent use.
type Converter struct {
	policy *bluemonday.Policy
	md     *converter.Converter
}

// New creates a Converter.
func New() *Converter {
	return &Converter{
		policy: bluemonday.UGCPolicy(),
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
	}
}

// ToText converts an HTML fragment or document to text. The input is
// sanitized first; script, style and event-handler payloads never reach
// the output. If markdown conversion fails or produces nothing, the
// visible text is collected from the DOM instead, so the result is empty
// only when the input carries no text at all.
func (c *Converter) ToText(htmlInput string) string {
	if strings.TrimSpace(htmlInput) == "" {
		return ""
	}
	clean := c.policy.Sanitize(htmlInput)

	result, err := c.md.ConvertString(clean)
	if err == nil && strings.TrimSpace(result) != "" {
		return strings.TrimSpace(result)
	}
	return collectText(clean)
}

// collectText walks the DOM and gathers visible text, inserting line
// breaks at block boundaries so list items stay on their own lines.
func collectText(htmlInput string) string {
	doc, err := html.Parse(strings.NewReader(htmlInput))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.P, atom.Div, atom.Li, atom.Br, atom.Tr,
				atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
				sb.WriteByte('\n')
			}
		}
	}
	walk(doc)
	return strings.TrimSpace(sb.String())
}
