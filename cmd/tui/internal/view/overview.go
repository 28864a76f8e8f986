package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/ledgerboard/internal/dashboard"
)

const chartRows = 10

// OverviewModel loads each panel on its own so a slow or failing one never holds up the others.
type OverviewModel struct {
	svc *dashboard.Service

	cards  *dashboard.Cards
	chart  *dashboard.Chart
	latest []*dashboard.LatestInvoice

	cardsErr, chartErr, latestErr error
	cardsDone, chartDone, latestDone bool
}

func NewOverviewModel(svc *dashboard.Service) OverviewModel {
	return OverviewModel{svc: svc}
}

func (m OverviewModel) Title() string     { return "Dashboard" }
func (m OverviewModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m OverviewModel) Init() tea.Cmd {
	return tea.Batch(m.loadCardsCmd(), m.loadRevenueCmd(), m.loadLatestCmd())
}

func (m OverviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m = NewOverviewModel(m.svc)
			return m, m.Init()
		}

	case cardsMsg:
		m.cards, m.cardsErr, m.cardsDone = msg.cards, msg.err, true
	case revenueMsg:
		m.chart, m.chartErr, m.chartDone = msg.chart, msg.err, true
	case latestMsg:
		m.latest, m.latestErr, m.latestDone = msg.latest, msg.err, true
	}

	return m, nil
}

func (m OverviewModel) View() string {
	panel := lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63"))

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		m.cardsView(panel),
		lipgloss.JoinHorizontal(lipgloss.Top,
			panel.Render(m.revenueView()),
			panel.Render(m.latestView()),
		),
		lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()),
	))
}

func (m OverviewModel) cardsView(panel lipgloss.Style) string {
	switch {
	case !m.cardsDone:
		return panel.Render("Loading cards...")
	case m.cardsErr != nil:
		return panel.Render(errorStyle("Failed to fetch card data."))
	}

	card := func(title, value string) string {
		return panel.Width(20).Render(title + "\n" + activeStyle(value))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Collected", FormatCurrency(m.cards.TotalPaid)),
		card("Pending", FormatCurrency(m.cards.TotalPending)),
		card("Total Invoices", fmt.Sprint(m.cards.InvoiceCount)),
		card("Total Customers", fmt.Sprint(m.cards.CustomerCount)),
	)
}

func (m OverviewModel) revenueView() string {
	switch {
	case !m.chartDone:
		return "Recent Revenue\n\nLoading..."
	case m.chartErr != nil:
		return "Recent Revenue\n\n" + errorStyle("Failed to fetch revenue data.")
	case len(m.chart.Bars) == 0:
		return "Recent Revenue\n\nNo data available."
	}

	var b strings.Builder

	b.WriteString("Recent Revenue\n\n")

	for row := chartRows; row > 0; row-- {
		threshold := dashboard.ChartHeight * row / chartRows
		for _, bar := range m.chart.Bars {
			if bar.Height >= threshold {
				b.WriteString(" █ ")
			} else {
				b.WriteString("   ")
			}
		}

		b.WriteString("\n")
	}

	for _, bar := range m.chart.Bars {
		b.WriteString(fmt.Sprintf("%-3s", bar.Month))
	}

	fmt.Fprintf(&b, "\n\nTop: %s", m.chart.Labels[0])

	return b.String()
}

func (m OverviewModel) latestView() string {
	switch {
	case !m.latestDone:
		return "Latest Invoices\n\nLoading..."
	case m.latestErr != nil:
		return "Latest Invoices\n\n" + errorStyle("Failed to fetch the latest invoices.")
	case len(m.latest) == 0:
		return "Latest Invoices\n\nNo data available."
	}

	var b strings.Builder

	b.WriteString("Latest Invoices\n\n")

	for _, li := range m.latest {
		fmt.Fprintf(&b, "%-22s %12s\n", li.Name, FormatCurrency(li.Amount))
	}

	return b.String()
}

// Messages

type cardsMsg struct {
	cards *dashboard.Cards
	err   error
}

type revenueMsg struct {
	chart *dashboard.Chart
	err   error
}

type latestMsg struct {
	latest []*dashboard.LatestInvoice
	err    error
}

func (m OverviewModel) loadCardsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		cards, err := m.svc.Cards(ctx)

		return cardsMsg{cards: cards, err: err}
	}
}

func (m OverviewModel) loadRevenueCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		chart, err := m.svc.Revenue(ctx)

		return revenueMsg{chart: chart, err: err}
	}
}

func (m OverviewModel) loadLatestCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		latest, err := m.svc.LatestInvoices(ctx)

		return latestMsg{latest: latest, err: err}
	}
}
