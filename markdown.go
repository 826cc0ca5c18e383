package glide

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"
)

// ParseMarkdown converts Markdown source into a Document. Conversion is
// delegated to goldmark; this only maps its AST onto the block/run model.
// Fenced code blocks become preformatted blocks with the "highlight" class,
// links become interactive runs, emphasis splits text into separate runs on
// the same visual line.
func ParseMarkdown(src []byte) (*Document, error) {
	md := goldmark.New()
	root := md.Parser().Parse(gtext.NewReader(src))

	doc := NewDocument()
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		convertBlock(n, doc.Root(), src)
	}
	return doc, nil
}

// inlineState carries style flags down the inline tree.
type inlineState struct {
	bold        bool
	italic      bool
	code        bool
	interactive bool
	href        string
}

func convertBlock(n ast.Node, parent *Block, src []byte) {
	switch n := n.(type) {
	case *ast.Heading:
		b := parent.AddBlock(&Block{Kind: KindHeading, Level: n.Level})
		convertInlines(n, b, src, inlineState{bold: true})

	case *ast.Paragraph:
		b := parent.AddBlock(&Block{Kind: KindParagraph})
		convertInlines(n, b, src, inlineState{})

	case *ast.TextBlock:
		b := parent.AddBlock(&Block{Kind: KindParagraph})
		convertInlines(n, b, src, inlineState{})

	case *ast.FencedCodeBlock:
		b := parent.AddBlock(&Block{Kind: KindPre, Class: "highlight", Padding: 1})
		b.AddRun(&Run{Text: codeText(n, src), Code: true})

	case *ast.CodeBlock:
		b := parent.AddBlock(&Block{Kind: KindPre, Class: "highlight", Padding: 1})
		b.AddRun(&Run{Text: codeText(n, src), Code: true})

	case *ast.Blockquote:
		b := parent.AddBlock(&Block{Kind: KindQuote})
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			convertBlock(c, b, src)
		}

	case *ast.List:
		b := parent.AddBlock(&Block{Kind: KindPlain, Class: "list"})
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			convertBlock(c, b, src)
		}

	case *ast.ListItem:
		b := parent.AddBlock(&Block{Kind: KindListItem})
		b.AddRun(&Run{Text: "•"})
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			// Tight list items wrap their text in a TextBlock; fold its
			// inlines into the item so the bullet shares the row.
			switch c.(type) {
			case *ast.TextBlock, *ast.Paragraph:
				convertInlines(c, b, src, inlineState{})
			default:
				convertBlock(c, b, src)
			}
		}

	case *ast.ThematicBreak:
		b := parent.AddBlock(&Block{Kind: KindPlain, Class: "rule"})
		b.AddRun(&Run{Text: "* * *"})
	}
}

// codeText collects a code block's raw lines.
func codeText(n ast.Node, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return sb.String()
}

func convertInlines(n ast.Node, b *Block, src []byte, st inlineState) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			addRun(b, string(c.Segment.Value(src)), st)

		case *ast.String:
			addRun(b, string(c.Value), st)

		case *ast.Emphasis:
			child := st
			if c.Level >= 2 {
				child.bold = true
			} else {
				child.italic = true
			}
			convertInlines(c, b, src, child)

		case *ast.CodeSpan:
			child := st
			child.code = true
			convertInlines(c, b, src, child)

		case *ast.Link:
			child := st
			child.interactive = true
			child.href = string(c.Destination)
			convertInlines(c, b, src, child)

		case *ast.AutoLink:
			child := st
			child.interactive = true
			url := string(c.URL(src))
			child.href = url
			addRun(b, url, child)

		case *ast.Image:
			// no text under the pointer; skipped like any non-text node

		default:
			convertInlines(c, b, src, st)
		}
	}
}

func addRun(b *Block, text string, st inlineState) {
	if strings.TrimSpace(text) == "" {
		return
	}
	b.AddRun(&Run{
		Text:        text,
		Bold:        st.bold,
		Italic:      st.italic,
		Code:        st.code,
		Interactive: st.interactive,
		Href:        st.href,
	})
}

// ParseText converts plain text into a Document: blank-line separated chunks
// become paragraphs, chunks where every line is indented become preformatted
// blocks with the "terminal" class.
func ParseText(src []byte) *Document {
	doc := NewDocument()
	text := strings.ReplaceAll(string(src), "\r\n", "\n")

	for _, chunk := range strings.Split(text, "\n\n") {
		chunk = strings.TrimRight(chunk, "\n")
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		if indentedChunk(chunk) {
			b := doc.Root().AddBlock(&Block{Kind: KindPre, Class: "terminal", Padding: 1})
			b.AddRun(&Run{Text: chunk, Code: true})
			continue
		}
		b := doc.Root().AddBlock(&Block{Kind: KindParagraph})
		b.AddRun(&Run{Text: strings.Join(strings.Fields(chunk), " ")})
	}
	return doc
}

func indentedChunk(chunk string) bool {
	for _, line := range strings.Split(chunk, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.HasPrefix(line, "    ") && !strings.HasPrefix(line, "\t") {
			return false
		}
	}
	return true
}
