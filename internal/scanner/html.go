package scanner

import (
	"strings"

	"golang.org/x/net/html"
)

// VisibleText extracts the rendered text of an HTML document:
// script, style, and noscript subtrees are skipped, text nodes are
// joined with single spaces, and runs of whitespace collapse.
//
// Design decision: We use golang.org/x/net/html rather than regex
// stripping because broker pages are full of malformed markup, and
// the tokenizer handles that the way a browser would.
func VisibleText(body string) string {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		// The parser is extremely tolerant; if it still fails, fall
		// back to the raw body so scoring sees something.
		return collapseWhitespace(body)
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return collapseWhitespace(b.String())
}

// collapseWhitespace reduces all whitespace runs to single spaces and
// trims the ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
