package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/ledgerboard/internal/customer"
)

type CustomersModel struct {
	svc *customer.Service

	table     table.Model
	search    textinput.Model
	searching bool
	customers []*customer.Summary

	loading bool
	err     error
}

func NewCustomersModel(svc *customer.Service) CustomersModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 22},
			{Title: "Email", Width: 26},
			{Title: "Invoices", Width: 9},
			{Title: "Pending", Width: 12},
			{Title: "Paid", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	ti := textinput.New()
	ti.Placeholder = "Search customers..."
	ti.Width = 40

	return CustomersModel{svc: svc, table: t, search: ti, loading: true}
}

func (m CustomersModel) Title() string { return "Customers" }
func (m CustomersModel) ShortHelp() string {
	if m.searching {
		return "Enter: search | Esc: cancel"
	}

	return "Esc: back | /: search | r: refresh"
}

func (m CustomersModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m CustomersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCustomersMsg:
		m.loading = false
		m.err = msg.err
		m.customers = msg.customers
		m.refreshTable()

		return m, nil

	case tea.KeyMsg:
		if m.searching {
			switch msg.Type {
			case tea.KeyEsc:
				m.searching = false
				m.search.Blur()

				return m, nil
			case tea.KeyEnter:
				m.searching = false
				m.search.Blur()

				return m, m.loadCmd()
			}

			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)

			return m, cmd
		}

		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "/":
			m.searching = true
			m.search.Focus()

			return m, textinput.Blink
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CustomersModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading customers...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render("Search: "+m.search.View()),
		lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View()),
		lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()),
	))
}

func (m *CustomersModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.customers))
	for _, c := range m.customers {
		rows = append(rows, table.Row{
			c.Name,
			c.Email,
			fmt.Sprint(c.TotalInvoices),
			FormatCurrency(c.TotalPending),
			FormatCurrency(c.TotalPaid),
		})
	}

	m.table.SetRows(rows)
}

type loadCustomersMsg struct {
	customers []*customer.Summary
	err       error
}

func (m CustomersModel) loadCmd() tea.Cmd {
	query := strings.TrimSpace(m.search.Value())

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		customers, err := m.svc.Summaries(ctx, query)

		return loadCustomersMsg{customers: customers, err: err}
	}
}
