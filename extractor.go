package devdocs

// ExtractResult holds the content cut from a DevDocs page.
type ExtractResult struct {
	// Title is the text of the first heading in the content.
	Title string

	// ContentHTML is the selected content as HTML.
	ContentHTML string
}

// Extractor selects the part of a page that documents one entry.
type Extractor interface {
	// Extract returns the section of html anchored at fragment: the element
	// with that id and, when it is a heading, the siblings up to the next
	// heading of the same or higher level. An empty fragment, or one that
	// matches nothing, selects the whole page. Relative links are resolved
	// against pageURL unless it is empty.
	Extract(html, pageURL, fragment string) (*ExtractResult, error)
}
