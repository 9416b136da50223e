package analysis

import (
	"log"
	"math"
	"sort"

	domainAnalysis "autoreport/domain/analysis"
	"autoreport/domain/table"
	"autoreport/internal/errors"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// TopValueLimit is how many values a categorical summary keeps
const TopValueLimit = 5

// Engine derives an analysis result from a dataset
type Engine struct{}

// NewEngine creates a new analysis engine
func NewEngine() *Engine {
	return &Engine{}
}

// Analyze computes basic stats, numeric summaries, correlations and categorical summaries.
// Statistical edge cases degrade to NaN or empty summaries; only a nil dataset fails.
func (e *Engine) Analyze(ds *table.Dataset) (*domainAnalysis.Result, error) {
	if ds == nil {
		return nil, errors.NoDataLoaded("no data loaded for analysis")
	}

	result := &domainAnalysis.Result{
		BasicStats: e.basicStats(ds),
	}

	var numericCols []int
	for i, col := range ds.Columns() {
		switch col.Kind {
		case table.KindNumeric:
			numericCols = append(numericCols, i)
			result.NumericSummary = append(result.NumericSummary, Summarize(col.Name, ds.Floats(i)))
		case table.KindCategorical, table.KindTemporal, table.KindOther:
			result.CategoricalSummary = append(result.CategoricalSummary, e.categorical(ds, i))
		}
	}

	if len(numericCols) >= 2 {
		result.Correlation = e.correlation(ds, numericCols)
	}

	log.Printf("[AnalysisEngine] Analyzed %d rows: %d numeric, %d non-numeric columns, %d missing values",
		result.BasicStats.RowCount, len(result.NumericSummary), len(result.CategoricalSummary),
		result.BasicStats.MissingValueCount)

	return result, nil
}

func (e *Engine) basicStats(ds *table.Dataset) domainAnalysis.BasicStats {
	basic := domainAnalysis.BasicStats{
		RowCount:    ds.NumRows(),
		ColumnCount: ds.NumColumns(),
		ColumnKinds: make(map[string]table.ColumnKind, ds.NumColumns()),
	}
	for r := 0; r < ds.NumRows(); r++ {
		for c := 0; c < ds.NumColumns(); c++ {
			if ds.Cell(r, c).Null {
				basic.MissingValueCount++
			}
		}
	}
	for _, col := range ds.Columns() {
		basic.ColumnKinds[col.Name] = col.Kind
	}
	return basic
}

// Summarize computes count, mean, sample std, min, quartiles and max of values
func Summarize(column string, values []float64) domainAnalysis.NumericSummary {
	nan := math.NaN()
	summary := domainAnalysis.NumericSummary{
		Column: column,
		Count:  len(values),
		Mean:   nan, Std: nan, Min: nan, P25: nan, P50: nan, P75: nan, Max: nan,
	}
	if len(values) == 0 {
		return summary
	}

	summary.Mean, _ = stats.Mean(values)
	summary.Min, _ = stats.Min(values)
	summary.Max, _ = stats.Max(values)
	if len(values) > 1 {
		summary.Std, _ = stats.StandardDeviationSample(values)
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	summary.P25 = Quantile(sorted, 0.25)
	summary.P50 = Quantile(sorted, 0.50)
	summary.P75 = Quantile(sorted, 0.75)

	return summary
}

// Quantile linearly interpolates between closest ranks at h = (n-1)p. sorted must be ascending.
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	h := p * float64(len(sorted)-1)
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

func (e *Engine) correlation(ds *table.Dataset, cols []int) *domainAnalysis.CorrelationMatrix {
	n := len(cols)
	matrix := &domainAnalysis.CorrelationMatrix{
		Columns: make([]string, n),
		Values:  make([][]float64, n),
	}
	for i, c := range cols {
		matrix.Columns[i] = ds.Column(c).Name
		matrix.Values[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		if hasVariance(ds.Floats(cols[i])) {
			matrix.Values[i][i] = 1
		} else {
			matrix.Values[i][i] = math.NaN()
		}
		for j := i + 1; j < n; j++ {
			xs, ys := pairwiseComplete(ds, cols[i], cols[j])
			r := Pearson(xs, ys)
			matrix.Values[i][j] = r
			matrix.Values[j][i] = r
		}
	}
	return matrix
}

// Pearson returns the correlation of xs and ys, or NaN when it is undefined
func Pearson(xs, ys []float64) float64 {
	if len(xs) < 2 || len(xs) != len(ys) || !hasVariance(xs) || !hasVariance(ys) {
		return math.NaN()
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return r
	}
	return math.Max(-1, math.Min(1, r))
}

// hasVariance is exact: a column of identical values never counts, whatever the rounding of its mean
func hasVariance(values []float64) bool {
	if len(values) < 2 {
		return false
	}
	for _, v := range values[1:] {
		if v != values[0] {
			return true
		}
	}
	return false
}

func pairwiseComplete(ds *table.Dataset, a, b int) ([]float64, []float64) {
	xs := make([]float64, 0, ds.NumRows())
	ys := make([]float64, 0, ds.NumRows())
	for r := 0; r < ds.NumRows(); r++ {
		x, y := ds.Cell(r, a), ds.Cell(r, b)
		if x.Null || y.Null {
			continue
		}
		xs = append(xs, x.Num)
		ys = append(ys, y.Num)
	}
	return xs, ys
}

func (e *Engine) categorical(ds *table.Dataset, c int) domainAnalysis.CategoricalSummary {
	counts := CountValues(ds, c)
	top := counts
	if len(top) > TopValueLimit {
		top = top[:TopValueLimit]
	}
	col := ds.Column(c)
	return domainAnalysis.CategoricalSummary{
		Column:      col.Name,
		Kind:        col.Kind,
		UniqueCount: len(counts),
		TopValues:   append([]domainAnalysis.ValueCount(nil), top...),
	}
}

// CountValues counts the non-null values of column c, most frequent first.
// Ties keep the order in which values were first seen.
func CountValues(ds *table.Dataset, c int) []domainAnalysis.ValueCount {
	index := make(map[string]int)
	var counts []domainAnalysis.ValueCount

	for r := 0; r < ds.NumRows(); r++ {
		v := ds.Cell(r, c)
		if v.Null {
			continue
		}
		if i, ok := index[v.Text]; ok {
			counts[i].Count++
			continue
		}
		index[v.Text] = len(counts)
		counts = append(counts, domainAnalysis.ValueCount{Value: v.Text, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}
