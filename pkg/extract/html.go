package extract

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/doctract/doctract/pkg/interfaces"
	"github.com/doctract/doctract/pkg/types"
	"github.com/doctract/doctract/pkg/utils"
)

// HTMLExtractor extracts readable text from HTML files in-process
type HTMLExtractor struct {
	name   string
	logger zerolog.Logger
}

// NewHTMLExtractor creates a new HTML extractor
func NewHTMLExtractor(log zerolog.Logger) interfaces.Extractor {
	return &HTMLExtractor{
		name:   "html",
		logger: log,
	}
}

// Extract extracts text from an HTML file
func (e *HTMLExtractor) Extract(ctx context.Context, inputFile string) ([]byte, error) {
	e.logger.Debug().Str("file", inputFile).Msg("parsing HTML document")

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	content, err := os.ReadFile(inputFile)
	if err != nil {
		return nil, utils.NewIOError("failed to read HTML file", err)
	}

	doc, err := html.Parse(strings.NewReader(string(content)))
	if err != nil {
		return nil, utils.NewUnsupportedError("failed to parse HTML", err)
	}

	var builder strings.Builder
	collectText(doc, &builder)

	return []byte(builder.String()), nil
}

// SupportsFile checks if this extractor supports the given file kind
func (e *HTMLExtractor) SupportsFile(kind types.FileKind) bool {
	return kind == types.FileKindHTML
}

// Name returns the name of the extractor
func (e *HTMLExtractor) Name() string {
	return e.name
}

// collectText recursively gathers text content, skipping script and style
// subtrees and inserting newlines around block elements
func collectText(node *html.Node, builder *strings.Builder) {
	if node.Type == html.ElementNode {
		if node.DataAtom == atom.Script || node.DataAtom == atom.Style {
			return
		}
		if isBlockElement(node.DataAtom) {
			builder.WriteString("\n")
		}
	}

	if node.Type == html.TextNode {
		builder.WriteString(node.Data)
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, builder)
	}

	if node.Type == html.ElementNode && isBlockElement(node.DataAtom) {
		builder.WriteString("\n")
	}
}

// isBlockElement reports whether the element starts on its own line
func isBlockElement(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Br, atom.H1, atom.H2, atom.H3, atom.H4,
		atom.H5, atom.H6, atom.Li, atom.Tr, atom.Table, atom.Blockquote,
		atom.Pre, atom.Section, atom.Article, atom.Header, atom.Footer:
		return true
	default:
		return false
	}
}
