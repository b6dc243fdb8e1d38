package ingest

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blankLines collapses runs of three or more newlines left by block elements.
var blankLines = regexp.MustCompile(`\n{3,}`)

// ExtractText converts posting HTML to plain text: scripts, styles and
// navigation chrome removed, block elements separated by newlines.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript, nav, header, footer, iframe").Remove()

	root := doc.Find("main")
	if root.Length() == 0 {
		root = doc.Find("body")
	}
	if root.Length() == 0 {
		return strings.TrimSpace(doc.Text()), nil
	}

	var sb strings.Builder
	root.Find("h1, h2, h3, h4, p, li, div").Each(func(_ int, s *goquery.Selection) {
		// Leaf blocks only; containers would duplicate their children's text.
		if s.Children().Filter("h1, h2, h3, h4, p, li, div, ul, ol").Length() > 0 {
			return
		}
		text := strings.TrimSpace(s.Text())
		if text != "" {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
	})

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		text = root.Text()
	}
	return strings.TrimSpace(blankLines.ReplaceAllString(text, "\n\n")), nil
}
