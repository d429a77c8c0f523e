// Package goquery implements devdocs.Extractor using goquery to cut the
// section documenting one entry out of a DevDocs content page.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/devdocs"
)

// Ensure Extractor implements devdocs.Extractor at compile time.
var _ devdocs.Extractor = (*Extractor)(nil)

// headingSelector matches the heading levels DevDocs uses for entries.
const headingSelector = "h1, h2, h3, h4, h5, h6"

// Extractor selects entry sections from DevDocs page HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the section of html anchored at fragment.
func (e *Extractor) Extract(html, pageURL, fragment string) (*devdocs.ExtractResult, error) {
	if strings.TrimSpace(html) == "" {
		return nil, devdocs.Errorf(devdocs.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, devdocs.Errorf(devdocs.EINVALID, "failed to parse HTML: %v", err)
	}

	content := doc.Find("body")
	if fragment != "" {
		if anchor := findByID(doc, fragment); anchor.Length() > 0 {
			content = section(anchor)
		}
	}

	normalizeCode(content)
	if pageURL != "" {
		if err := resolveLinks(content, pageURL); err != nil {
			return nil, err
		}
	}

	var b strings.Builder
	var renderErr error
	content.Each(func(_ int, sel *goquery.Selection) {
		if renderErr != nil {
			return
		}
		var h string
		if sel.Is("body") {
			h, renderErr = sel.Html()
		} else {
			h, renderErr = goquery.OuterHtml(sel)
		}
		b.WriteString(h)
	})
	if renderErr != nil {
		return nil, devdocs.Errorf(devdocs.EINTERNAL, "failed to render HTML: %v", renderErr)
	}

	title := content.Filter(headingSelector).First()
	if title.Length() == 0 {
		title = content.Find(headingSelector).First()
	}

	return &devdocs.ExtractResult{
		Title:       strings.TrimSpace(title.Text()),
		ContentHTML: b.String(),
	}, nil
}

// findByID compares ids directly so fragments need no selector escaping.
func findByID(doc *goquery.Document, id string) *goquery.Selection {
	return doc.Find("[id]").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		v, _ := sel.Attr("id")
		return v == id
	}).First()
}

// section returns anchor and, when anchor is a heading, its following
// siblings up to the next heading of the same or higher level.
func section(anchor *goquery.Selection) *goquery.Selection {
	level := headingLevel(anchor)
	if level == 0 {
		return anchor
	}

	sel := anchor
	for next := anchor.Next(); next.Length() > 0; next = next.Next() {
		if l := headingLevel(next); l > 0 && l <= level {
			break
		}
		sel = sel.AddSelection(next)
	}
	return sel
}

// headingLevel returns 1-6 for h1-h6 and 0 for anything else.
func headingLevel(sel *goquery.Selection) int {
	name := goquery.NodeName(sel)
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		return int(name[1] - '0')
	}
	return 0
}

// normalizeCode rewrites DevDocs' <pre data-language="x"> blocks into
// <pre><code class="language-x"> so converters emit fenced code with a hint.
func normalizeCode(content *goquery.Selection) {
	pres := content.Find("pre[data-language]").AddSelection(content.Filter("pre[data-language]"))
	pres.Each(func(_ int, pre *goquery.Selection) {
		if pre.Children().Is("code") {
			return
		}
		lang, _ := pre.Attr("data-language")
		text := pre.Text()
		pre.Empty()
		pre.RemoveAttr("data-language")
		pre.AppendHtml(`<code class="language-` + escapeAttr(lang) + `"></code>`)
		pre.Find("code").SetText(text)
	})
}

// resolveLinks makes href and src attributes absolute against base.
func resolveLinks(content *goquery.Selection, baseURL string) error {
	base, err := url.Parse(baseURL)
	if err != nil {
		return devdocs.Errorf(devdocs.EINVALID, "invalid base URL: %v", err)
	}

	for _, attr := range []string{"href", "src"} {
		sel := content.Find("[" + attr + "]").AddSelection(content.Filter("[" + attr + "]"))
		sel.Each(func(_ int, s *goquery.Selection) {
			v, _ := s.Attr(attr)
			if v == "" || strings.HasPrefix(v, "#") {
				return
			}
			ref, err := url.Parse(v)
			if err != nil {
				return
			}
			s.SetAttr(attr, base.ResolveReference(ref).String())
		})
	}
	return nil
}

func escapeAttr(s string) string {
	return strings.NewReplacer(`"`, "", "<", "", ">", "", "&", "").Replace(s)
}
