package sample

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sheet is a generated table: a header plus rows of string, int, float64 or time.Time cells
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]interface{}
}

// Head returns a sheet holding the first n rows
func (s *Sheet) Head(n int) *Sheet {
	if n > len(s.Rows) {
		n = len(s.Rows)
	}
	return &Sheet{Name: s.Name, Header: s.Header, Rows: s.Rows[:n]}
}

// GeneratorConfig configures the sample dataset generator
type GeneratorConfig struct {
	SalesRows       int
	HRRows          int
	SimpleSalesRows int
	Seed            int64
}

// DefaultGeneratorConfig returns the sizes of the bundled sample datasets
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		SalesRows:       2000,
		HRRows:          800,
		SimpleSalesRows: 1000,
		Seed:            42,
	}
}

// hrSeedOffset keeps the HR stream independent of the sales stream for any base seed
const hrSeedOffset = 81

// Generator produces deterministic synthetic business datasets
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new sample data generator
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

var (
	salesProducts = []string{"Laptop", "Desktop", "Monitor", "Keyboard", "Mouse", "Headphones", "Webcam", "Tablet"}
	basePrices    = map[string]float64{
		"Laptop": 1200, "Desktop": 800, "Monitor": 300, "Keyboard": 50,
		"Mouse": 25, "Headphones": 100, "Webcam": 75, "Tablet": 400,
	}
	salesCategories = []string{"Electronics", "Accessories", "Computing", "Audio"}
	salesRegions    = []string{"North America", "Europe", "Asia Pacific", "Latin America"}
	salesChannels   = []string{"Online", "Retail", "Partner", "Direct"}

	departments = []string{"Engineering", "Sales", "Marketing", "HR", "Finance", "Operations"}
	jobLevels   = []string{"Junior", "Mid", "Senior", "Lead", "Manager", "Director"}
	educations  = []string{"High School", "Bachelor", "Master", "PhD"}
	baseSalary  = map[string][]float64{
		"Engineering": {70000, 90000, 120000, 140000, 160000, 200000},
		"Sales":       {50000, 70000, 90000, 110000, 130000, 180000},
		"Marketing":   {55000, 75000, 95000, 115000, 135000, 175000},
		"HR":          {50000, 65000, 85000, 105000, 125000, 160000},
		"Finance":     {60000, 80000, 100000, 120000, 140000, 190000},
		"Operations":  {55000, 70000, 90000, 110000, 130000, 170000},
	}

	simpleProducts = []string{"Product A", "Product B", "Product C", "Product D", "Product E"}
	simpleRegions  = []string{"North", "South", "East", "West"}
)

// Sales generates the comprehensive sales dataset covering 2023 and 2024
func (g *Generator) Sales() *Sheet {
	rng := newRand(g.config.Seed)
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	days := int(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC).Sub(start).Hours()/24) + 1

	sheet := &Sheet{
		Name: "Sales",
		Header: []string{
			"Date", "Product", "Category", "Region", "Sales_Channel", "Unit_Price", "Quantity_Sold",
			"Discount_Percent", "Customer_Rating", "Shipping_Cost", "Marketing_Spend", "Revenue",
			"Profit_Margin", "Profit", "Month", "Quarter", "Day_of_Week",
		},
	}

	for i := 0; i < g.config.SalesRows; i++ {
		date := start.AddDate(0, 0, rng.IntN(days))
		product := pick(rng, salesProducts)
		unitPrice := basePrices[product] * uniform(rng, 0.8, 1.3)
		quantity := 1 + rng.IntN(19)
		discount := uniform(rng, 0, 0.3)
		revenue := unitPrice * float64(quantity) * (1 - discount)
		margin := uniform(rng, 0.1, 0.4)

		sheet.Rows = append(sheet.Rows, []interface{}{
			date,
			product,
			pick(rng, salesCategories),
			pick(rng, salesRegions),
			pick(rng, salesChannels),
			round2(unitPrice),
			quantity,
			round2(discount),
			round2(uniform(rng, 3.0, 5.0)),
			round2(uniform(rng, 5, 50)),
			round2(uniform(rng, 10, 500)),
			round2(revenue),
			round2(margin),
			round2(revenue * margin),
			int(date.Month()),
			(int(date.Month())-1)/3 + 1,
			date.Weekday().String(),
		})
	}
	return sheet
}

// HR generates the employee analytics dataset
func (g *Generator) HR() *Sheet {
	rng := newRand(g.config.Seed + hrSeedOffset)

	sheet := &Sheet{
		Name: "HR",
		Header: []string{
			"Employee_ID", "Department", "Job_Level", "Education", "Years_Experience", "Age", "Salary",
			"Performance_Rating", "Training_Hours_Annual", "Overtime_Hours_Monthly", "Sick_Days_Annual",
			"Employee_Satisfaction", "Years_at_Company", "Remote_Work_Days",
		},
	}

	for i := 0; i < g.config.HRRows; i++ {
		dept := pick(rng, departments)
		level := rng.IntN(len(jobLevels))

		sheet.Rows = append(sheet.Rows, []interface{}{
			fmt.Sprintf("EMP_%04d", i+1),
			dept,
			jobLevels[level],
			pick(rng, educations),
			rng.IntN(25),
			22 + rng.IntN(43),
			round2(baseSalary[dept][level] * uniform(rng, 0.9, 1.2)),
			round2(uniform(rng, 2.5, 5.0)),
			rng.IntN(120),
			rng.IntN(40),
			rng.IntN(15),
			round2(uniform(rng, 2.0, 5.0)),
			rng.IntN(20),
			rng.IntN(5),
		})
	}
	return sheet
}

// SimpleSales generates the small demonstration dataset used when no input file is given
func (g *Generator) SimpleSales() *Sheet {
	src := rand.NewPCG(uint64(g.config.Seed), 0)
	rng := rand.New(src)
	amounts := distuv.Normal{Mu: 1000, Sigma: 300, Src: src}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	sheet := &Sheet{
		Name:   "Sales",
		Header: []string{"Date", "Product", "Region", "Sales_Amount", "Quantity", "Customer_Age", "Customer_Satisfaction"},
	}
	for i := 0; i < g.config.SimpleSalesRows; i++ {
		amount := math.Max(0, amounts.Rand())
		sheet.Rows = append(sheet.Rows, []interface{}{
			start.AddDate(0, 0, rng.IntN(365)),
			pick(rng, simpleProducts),
			pick(rng, simpleRegions),
			round2(amount),
			1 + rng.IntN(49),
			18 + rng.IntN(62),
			round2(uniform(rng, 1, 5)),
		})
	}
	return sheet
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.IntN(len(values))]
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
