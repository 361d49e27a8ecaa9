package ingestion

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// htmlExtensions are saved web pages, usually job postings.
var htmlExtensions = map[string]bool{
	".html": true,
	".htm":  true,
}

// htmlNoise matches page chrome that never belongs to a posting.
const htmlNoise = "head, script, style, noscript, template, iframe, form, nav, header, footer, aside, .cookie-banner, .advertisement, .ads"

// htmlBlocks start and end a line of their own.
var htmlBlocks = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "main": true,
	"ul": true, "ol": true, "dl": true, "dt": true, "dd": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"table": true, "tr": true, "blockquote": true, "pre": true,
}

// HTMLText extracts the visible text of an HTML page. Block elements become
// separate lines and list items become "- " bullets, so headings and bullet
// points survive for segmentation. When the page has a main or article
// element only its content is kept.
func HTMLText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find(htmlNoise).Remove()

	root := doc.Find("main, article").First()
	if root.Length() == 0 {
		root = doc.Selection
	}

	var sb strings.Builder
	for _, n := range root.Nodes {
		writeHTMLNode(&sb, n)
	}

	lines := strings.Split(sb.String(), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return CleanText(strings.Join(kept, "\n")), nil
}

func writeHTMLNode(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(innerSpaceRe.ReplaceAllString(n.Data, " "))
		return
	case html.ElementNode, html.DocumentNode:
	default:
		return
	}

	switch {
	case n.Data == "br":
		sb.WriteByte('\n')
		return
	case n.Data == "li":
		sb.WriteString("\n- ")
	case htmlBlocks[n.Data]:
		sb.WriteByte('\n')
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeHTMLNode(sb, c)
	}

	if n.Data == "li" || htmlBlocks[n.Data] {
		sb.WriteByte('\n')
	}
}
