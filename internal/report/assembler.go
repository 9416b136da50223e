package report

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	domainAnalysis "autoreport/domain/analysis"
	"autoreport/domain/chart"
	"autoreport/domain/report"
	"autoreport/internal/format"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	timestampLayout    = "2006-01-02 15:04:05"
	detailedColumns    = 3
	describeTableRows  = 10
	executiveSummaryFm = "This automated report analyzes the loaded dataset of %s rows and %s columns. " +
		"It covers descriptive statistics, correlations between numeric columns and breakdowns of " +
		"categorical columns, so that patterns in the data can inform decisions."
)

// Meta carries the document identity printed on the title page
type Meta struct {
	Title       string
	Generator   string
	GeneratedAt time.Time
}

// Assembler lays out a paginated document from analysis output and chart artifacts
type Assembler struct{}

// NewAssembler creates a new report assembler
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble builds the document. Pagination follows fixed rules: a title page, a data
// overview page shared with the first artifact, one page per further artifact and a
// closing statistics page when numeric columns exist. A nil result prints N/A figures.
func (a *Assembler) Assemble(result *domainAnalysis.Result, artifacts []chart.Artifact, meta Meta) *report.Document {
	doc := &report.Document{Title: meta.Title, GeneratedAt: meta.GeneratedAt}

	doc.Pages = append(doc.Pages, a.titlePage(result, meta))

	overview := a.overviewPage(result)
	for i, artifact := range artifacts {
		if i == 0 {
			overview.Blocks = append(overview.Blocks, a.artifactBlocks(artifact)...)
			doc.Pages = append(doc.Pages, overview)
			continue
		}
		doc.Pages = append(doc.Pages, report.Page{Blocks: a.artifactBlocks(artifact)})
	}
	if len(artifacts) == 0 {
		doc.Pages = append(doc.Pages, overview)
	}

	if result != nil && len(result.NumericSummary) > 0 {
		doc.Pages = append(doc.Pages, a.statisticsPage(result.NumericSummary))
	}

	log.Printf("[ReportAssembler] Assembled %q: %d pages, %d artifacts", meta.Title, doc.PageCount(), len(artifacts))
	return doc
}

func (a *Assembler) titlePage(result *domainAnalysis.Result, meta Meta) report.Page {
	rows, cols := format.Placeholder, format.Placeholder
	if result != nil {
		rows = strconv.Itoa(result.BasicStats.RowCount)
		cols = strconv.Itoa(result.BasicStats.ColumnCount)
	}

	return report.Page{Blocks: []report.Block{
		report.CenteredHeading(1, meta.Title),
		report.CenteredParagraph("Generated on: " + meta.GeneratedAt.Format(timestampLayout)),
		report.CenteredParagraph("Generated by: " + meta.Generator),
		report.Heading(2, "Executive Summary"),
		report.Paragraph(fmt.Sprintf(executiveSummaryFm, rows, cols)),
	}}
}

func (a *Assembler) overviewPage(result *domainAnalysis.Result) report.Page {
	rows, cols, missing := format.Placeholder, format.Placeholder, format.Placeholder
	if result != nil {
		rows = strconv.Itoa(result.BasicStats.RowCount)
		cols = strconv.Itoa(result.BasicStats.ColumnCount)
		missing = strconv.Itoa(result.BasicStats.MissingValueCount)
	}

	return report.Page{Blocks: []report.Block{
		report.Heading(2, "Data Overview"),
		report.KeyValue("Total Rows", rows),
		report.KeyValue("Total Columns", cols),
		report.KeyValue("Missing Values", missing),
	}}
}

func (a *Assembler) artifactBlocks(artifact chart.Artifact) []report.Block {
	blocks := []report.Block{report.Heading(3, Humanize(artifact.ID))}

	for _, panel := range artifact.Panels {
		switch panel.Status {
		case chart.StatusRendered:
			blocks = append(blocks, report.Image(panel.Image, panel.Title))
		case chart.StatusDegraded:
			blocks = append(blocks, report.Paragraph(fmt.Sprintf("Chart could not be rendered: %s (%s)", panel.Title, panel.Reason)))
		case chart.StatusBlank:
		}
	}
	return blocks
}

func (a *Assembler) statisticsPage(summaries []domainAnalysis.NumericSummary) report.Page {
	page := report.Page{Blocks: []report.Block{report.Heading(2, "Statistical Summary")}}

	for i, s := range summaries {
		if i == detailedColumns {
			break
		}
		page.Blocks = append(page.Blocks,
			report.Heading(4, "Column: "+s.Column),
			report.KeyValue("Mean", format.Decimal2(s.Mean)),
			report.KeyValue("Std", format.Decimal2(s.Std)),
			report.KeyValue("Min", format.Decimal2(s.Min)),
			report.KeyValue("Max", format.Decimal2(s.Max)),
		)
	}

	page.Blocks = append(page.Blocks, report.TableBlock(describeTable(summaries)))
	if len(summaries) > describeTableRows {
		page.Blocks = append(page.Blocks, report.Paragraph(
			fmt.Sprintf("Showing the first %d of %d numeric columns.", describeTableRows, len(summaries))))
	}
	return page
}

// describeTable lists the numeric summary, one row per column, capped so the
// statistics page always fits on a single sheet
func describeTable(summaries []domainAnalysis.NumericSummary) *report.Table {
	t := &report.Table{Header: []string{"Column", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"}}
	if len(summaries) > describeTableRows {
		summaries = summaries[:describeTableRows]
	}
	for _, s := range summaries {
		t.Rows = append(t.Rows, []string{
			s.Column,
			strconv.Itoa(s.Count),
			format.Decimal2(s.Mean),
			format.Decimal2(s.Std),
			format.Decimal2(s.Min),
			format.Decimal2(s.P25),
			format.Decimal2(s.P50),
			format.Decimal2(s.P75),
			format.Decimal2(s.Max),
		})
	}
	return t
}

// Humanize turns an artifact id into a heading: underscores become spaces, words are title cased.
// A Caser holds state, so each call gets its own.
func Humanize(id string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}
