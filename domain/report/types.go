package report

import (
	"time"
)

// BlockKind is the closed set of layout blocks
type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockParagraph
	BlockKeyValue
	BlockImage
	BlockTable
)

func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockParagraph:
		return "paragraph"
	case BlockKeyValue:
		return "key_value"
	case BlockImage:
		return "image"
	case BlockTable:
		return "table"
	}
	return "unknown"
}

// Block is one layout element. Only the fields relevant to Kind are set.
type Block struct {
	Kind  BlockKind
	Level int // heading level, 1 is the document title
	Text  string
	Key   string
	Value string
	Image string
	Align string // "C" or "L"
	Table *Table
}

// Table is a header plus pre-formatted rows
type Table struct {
	Header []string
	Rows   [][]string
}

// Page is an ordered sequence of blocks
type Page struct {
	Blocks []Block
}

// Images returns the image handles placed on the page
func (p Page) Images() []string {
	var out []string
	for _, b := range p.Blocks {
		if b.Kind == BlockImage {
			out = append(out, b.Image)
		}
	}
	return out
}

// Document is the paginated report, independent of output format
type Document struct {
	Title       string
	GeneratedAt time.Time
	Pages       []Page
}

// PageCount returns the number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

func Heading(level int, text string) Block {
	return Block{Kind: BlockHeading, Level: level, Text: text, Align: "L"}
}

func CenteredHeading(level int, text string) Block {
	return Block{Kind: BlockHeading, Level: level, Text: text, Align: "C"}
}

func Paragraph(text string) Block {
	return Block{Kind: BlockParagraph, Text: text, Align: "L"}
}

func CenteredParagraph(text string) Block {
	return Block{Kind: BlockParagraph, Text: text, Align: "C"}
}

func KeyValue(key, value string) Block {
	return Block{Kind: BlockKeyValue, Key: key, Value: value}
}

func Image(path, caption string) Block {
	return Block{Kind: BlockImage, Image: path, Text: caption}
}

func TableBlock(t *Table) Block {
	return Block{Kind: BlockTable, Table: t}
}
