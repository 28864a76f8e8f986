package dashboard

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
)

// ChartHeight is the pixel height of the revenue chart.
const ChartHeight = 350

// Cards holds the figures shown in the overview summary cards.
type Cards struct {
	InvoiceCount  int
	CustomerCount int
	TotalPaid     int64 // cents
	TotalPending  int64 // cents
}

// Revenue is one month of the revenue chart. Amount is in whole dollars.
type Revenue struct {
	Month  string
	Amount int64
}

// LatestInvoice is a recent invoice joined with its customer.
type LatestInvoice struct {
	ID       uuid.UUID
	Amount   int64 // cents
	Name     string
	Email    string
	ImageURL string
}

// Bar is a revenue entry scaled to the chart.
type Bar struct {
	Month  string
	Amount int64
	Height int
}

// Chart is the revenue chart ready for rendering.
type Chart struct {
	Labels []string
	Top    int64
	Bars   []Bar
}

// YAxis returns the y-axis labels, top first, and the top value. The top is the highest
// revenue rounded up to the next thousand; labels are spaced every thousand down to zero.
func YAxis(revenue []Revenue) ([]string, int64) {
	var highest int64
	for _, r := range revenue {
		highest = max(highest, r.Amount)
	}

	top := int64(math.Ceil(float64(highest)/1000)) * 1000

	labels := make([]string, 0, top/1000+1)
	for i := top; i >= 0; i -= 1000 {
		labels = append(labels, thousands(i))
	}

	return labels, top
}

// NewChart builds the bars for revenue. An empty slice yields a chart with no bars.
func NewChart(revenue []Revenue) *Chart {
	labels, top := YAxis(revenue)

	bars := make([]Bar, 0, len(revenue))
	for _, r := range revenue {
		h := 0
		if top > 0 {
			h = int(ChartHeight * r.Amount / top)
		}

		bars = append(bars, Bar{Month: r.Month, Amount: r.Amount, Height: h})
	}

	return &Chart{Labels: labels, Top: top, Bars: bars}
}

// thousands formats whole dollars as "$NK".
func thousands(dollars int64) string {
	f := *money.GetCurrency(money.USD).Formatter()
	f.Fraction = 0

	return f.Format(dollars/1000) + "K"
}
