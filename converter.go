package devdocs

// Converter renders the HTML selected by an Extractor as Markdown.
type Converter interface {
	// Convert returns the Markdown form of html. Empty input is EINVALID.
	Convert(html string) (string, error)
}
