package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/frontmatter"
)

// Parser renders the markdown content pages shipped with the app.
type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			&frontmatter.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithXHTML(),
		),
	)

	return &Parser{md: md}
}

func (p *Parser) Parse(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := p.md.Convert(source, &buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Heading is a level-2 section of a document, used for the contents list.
type Heading struct {
	ID   string
	Text string
}

type Document struct {
	HTML     []byte
	Meta     map[string]any
	Headings []Heading
}

// ParseWithFrontmatter renders source and decodes its YAML front matter.
// Missing or malformed front matter yields an empty map.
func (p *Parser) ParseWithFrontmatter(source []byte) (content []byte, meta map[string]any, err error) {
	doc, err := p.ParseDocument(source)
	if err != nil {
		return nil, nil, err
	}
	return doc.HTML, doc.Meta, nil
}

// ParseDocument renders source and also returns its front matter and the
// level-2 headings in document order.
func (p *Parser) ParseDocument(source []byte) (*Document, error) {
	ctx := parser.NewContext()
	root := p.md.Parser().Parse(text.NewReader(source), parser.WithContext(ctx))

	var buf bytes.Buffer
	err := p.md.Renderer().Render(&buf, source, root)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		HTML:     buf.Bytes(),
		Meta:     make(map[string]any),
		Headings: headings(root, source),
	}

	data := frontmatter.Get(ctx)
	if data != nil {
		decoded := make(map[string]any)
		if data.Decode(&decoded) == nil {
			doc.Meta = decoded
		}
	}

	return doc, nil
}

func headings(root ast.Node, source []byte) []Heading {
	var out []Heading
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}
		if h.Level != 2 {
			return ast.WalkSkipChildren, nil
		}

		var id string
		if v, ok := h.AttributeString("id"); ok {
			if b, ok := v.([]byte); ok {
				id = string(b)
			}
		}
		out = append(out, Heading{ID: id, Text: plainText(h, source)})
		return ast.WalkSkipChildren, nil
	})
	return out
}

// plainText joins the text leaves under n, dropping inline markup.
func plainText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
