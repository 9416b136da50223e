package pdf

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"autoreport/domain/report"
	"autoreport/internal/errors"

	"github.com/go-pdf/fpdf"
)

const (
	fontFamily     = "Arial"
	marginMM       = 10.0
	bottomMarginMM = 15.0
	imageGapMM     = 4.0
	minImageMM     = 1.0
	lineMM         = 6.0
	tableHeaderMM  = 7.0
	tableRowMM     = 6.0
)

// Writer renders a report document as an A4 PDF
type Writer struct {
	creator string
}

// NewWriter creates a PDF writer recording creator in the document metadata
func NewWriter(creator string) *Writer {
	return &Writer{creator: creator}
}

// Write lays out every page of doc and saves it to path. Images that cannot be
// embedded become a notice line; any other failure is a WRITE_FAILURE.
func (w *Writer) Write(doc *report.Document, path string) error {
	if doc == nil {
		return errors.WriteFailure(path, fmt.Errorf("no document to write"))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.WriteFailure(path, err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginMM, marginMM, marginMM)
	// Pages come from the document only; blocks are sized to fit their page.
	pdf.SetAutoPageBreak(false, bottomMarginMM)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator(w.creator, true)
	pdf.SetCreationDate(doc.GeneratedAt)

	l := &layout{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	notices := 0
	for _, page := range doc.Pages {
		pdf.AddPage()
		for i, b := range page.Blocks {
			switch b.Kind {
			case report.BlockHeading:
				l.heading(b)
			case report.BlockParagraph:
				l.paragraph(b)
			case report.BlockKeyValue:
				l.keyValue(b)
			case report.BlockImage:
				if !l.image(b, page.Blocks[i+1:]) {
					notices++
				}
			case report.BlockTable:
				l.table(b.Table)
			}
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return errors.WriteFailure(path, err)
	}

	log.Printf("[PDFWriter] Wrote %s: %d pages, %d image notices", path, pdf.PageNo(), notices)
	return nil
}

type layout struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (l *layout) contentWidth() float64 {
	pageW, _ := l.pdf.GetPageSize()
	left, _, right, _ := l.pdf.GetMargins()
	return pageW - left - right
}

func (l *layout) heading(b report.Block) {
	align := b.Align
	if align == "" {
		align = "L"
	}
	switch b.Level {
	case 1:
		l.pdf.SetFont(fontFamily, "B", 24)
		l.pdf.CellFormat(0, 30, l.tr(b.Text), "", 1, align, false, 0, "")
	case 2:
		l.pdf.Ln(6)
		l.pdf.SetFont(fontFamily, "B", 16)
		l.pdf.CellFormat(0, 10, l.tr(b.Text), "", 1, align, false, 0, "")
	case 3:
		l.pdf.Ln(4)
		l.pdf.SetFont(fontFamily, "B", 14)
		l.pdf.CellFormat(0, 10, l.tr(b.Text), "", 1, align, false, 0, "")
	default:
		l.pdf.Ln(5)
		l.pdf.SetFont(fontFamily, "B", 12)
		l.pdf.CellFormat(0, 8, l.tr(b.Text), "", 1, align, false, 0, "")
	}
}

func (l *layout) paragraph(b report.Block) {
	align := b.Align
	if align == "" {
		align = "L"
	}
	l.pdf.SetFont(fontFamily, "", 12)
	l.pdf.MultiCell(0, 6, l.tr(b.Text), "", align, false)
}

func (l *layout) keyValue(b report.Block) {
	l.pdf.SetFont(fontFamily, "", 12)
	l.pdf.CellFormat(0, 8, l.tr(b.Key+": "+b.Value), "", 1, "L", false, 0, "")
}

func (l *layout) notice(text string) {
	l.pdf.SetFont(fontFamily, "I", 10)
	l.pdf.SetTextColor(160, 0, 0)
	l.pdf.MultiCell(0, 6, l.tr(text), "", "L", false)
	l.pdf.SetTextColor(0, 0, 0)
}

// image scales the picture to share what is left of the page with the images
// still to come on it, after reserving room for the text blocks that follow.
// It reports false when a notice was written instead.
func (l *layout) image(b report.Block, rest []report.Block) bool {
	if _, err := os.Stat(b.Image); err != nil {
		l.notice(fmt.Sprintf("Chart could not be loaded: %s", imageLabel(b)))
		return false
	}

	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	info := l.pdf.RegisterImageOptions(b.Image, opts)
	if !l.pdf.Ok() || info == nil || info.Width() <= 0 || info.Height() <= 0 {
		err := l.pdf.Error()
		l.pdf.ClearError()
		log.Printf("[PDFWriter] Failed to embed %s: %v", b.Image, err)
		l.notice(fmt.Sprintf("Chart could not be loaded: %s", imageLabel(b)))
		return false
	}

	images := 1
	reserve := 0.0
	for _, next := range rest {
		if next.Kind == report.BlockImage {
			images++
			continue
		}
		reserve += l.blockHeight(next)
	}

	height := (l.bottom() - l.pdf.GetY() - reserve - imageGapMM*float64(images)) / float64(images)
	if height < minImageMM {
		log.Printf("[PDFWriter] No room left on page %d for %s", l.pdf.PageNo(), b.Image)
		l.notice(fmt.Sprintf("Chart omitted, page is full: %s", imageLabel(b)))
		return false
	}

	contentW := l.contentWidth()
	aspect := info.Width() / info.Height()
	width := height * aspect
	if width > contentW {
		width = contentW
		height = width / aspect
	}

	left, _, _, _ := l.pdf.GetMargins()
	y := l.pdf.GetY() + imageGapMM/2
	l.pdf.ImageOptions(b.Image, left+(contentW-width)/2, y, width, height, false, opts, 0, "")
	l.pdf.SetY(y + height + imageGapMM/2)
	return true
}

// bottom is the lowest y a block may reach
func (l *layout) bottom() float64 {
	_, pageH := l.pdf.GetPageSize()
	return pageH - bottomMarginMM
}

// blockHeight is the vertical space a non-image block takes when laid out
func (l *layout) blockHeight(b report.Block) float64 {
	switch b.Kind {
	case report.BlockHeading:
		switch b.Level {
		case 1:
			return 30
		case 2:
			return 16
		case 3:
			return 14
		}
		return 13
	case report.BlockKeyValue:
		return 8
	case report.BlockParagraph:
		l.pdf.SetFont(fontFamily, "", 12)
		return lineMM * float64(l.lines(b.Text))
	case report.BlockTable:
		if b.Table == nil || len(b.Table.Header) == 0 {
			return 0
		}
		return 4 + tableHeaderMM + tableRowMM*float64(len(b.Table.Rows))
	}
	return 0
}

// lines counts the rows MultiCell needs for text at the current font
func (l *layout) lines(text string) int {
	n := len(l.pdf.SplitText(l.tr(text), l.contentWidth()-2*l.pdf.GetCellMargin()))
	if n == 0 {
		return 1
	}
	return n
}

func imageLabel(b report.Block) string {
	if b.Text != "" {
		return b.Text
	}
	return filepath.Base(b.Image)
}

func (l *layout) table(t *report.Table) {
	if t == nil || len(t.Header) == 0 {
		return
	}

	l.pdf.Ln(4)
	colW := l.contentWidth() / float64(len(t.Header))

	l.pdf.SetFont(fontFamily, "B", 9)
	l.pdf.SetFillColor(220, 220, 220)
	for _, h := range t.Header {
		l.pdf.CellFormat(colW, 7, l.fit(h, colW), "1", 0, "C", true, 0, "")
	}
	l.pdf.Ln(-1)

	l.pdf.SetFont(fontFamily, "", 9)
	for r, row := range t.Rows {
		if l.pdf.GetY()+tableRowMM > l.bottom() {
			log.Printf("[PDFWriter] Table clipped at page bottom: %d of %d rows drawn", r, len(t.Rows))
			return
		}
		for i := range t.Header {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			align := "R"
			if i == 0 {
				align = "L"
			}
			l.pdf.CellFormat(colW, 6, l.fit(cell, colW), "1", 0, align, false, 0, "")
		}
		l.pdf.Ln(-1)
	}
}

// fit shortens text until it fits a cell of width w
func (l *layout) fit(text string, w float64) string {
	limit := w - 2
	if s := l.tr(text); l.pdf.GetStringWidth(s) <= limit {
		return s
	}
	runes := []rune(text)
	for len(runes) > 1 && l.pdf.GetStringWidth(l.tr(string(runes)+"..")) > limit {
		runes = runes[:len(runes)-1]
	}
	return l.tr(string(runes) + "..")
}
