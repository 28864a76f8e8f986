package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/ledgerboard/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/ledgerboard/internal/config"
	"github.com/MrJamesThe3rd/ledgerboard/internal/customer"
	customerStore "github.com/MrJamesThe3rd/ledgerboard/internal/customer/store"
	"github.com/MrJamesThe3rd/ledgerboard/internal/dashboard"
	dashboardStore "github.com/MrJamesThe3rd/ledgerboard/internal/dashboard/store"
	"github.com/MrJamesThe3rd/ledgerboard/internal/database"
	"github.com/MrJamesThe3rd/ledgerboard/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/ledgerboard/internal/invoice/store"
)

type model struct {
	invoiceService   *invoice.Service
	customerService  *customer.Service
	dashboardService *dashboard.Service

	currentView View

	overviewView  view.OverviewModel
	invoicesView  view.InvoicesModel
	customersView view.CustomersModel
}

type View int

const (
	ViewMenu      View = 0
	ViewOverview  View = 1
	ViewInvoices  View = 2
	ViewCustomers View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	return model{
		invoiceService:   invoice.NewService(invoiceStore.New(db)),
		customerService:  customer.NewService(customerStore.New(db)),
		dashboardService: dashboard.NewService(dashboardStore.New(db)),
		currentView:      ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewOverview
				m.overviewView = view.NewOverviewModel(m.dashboardService)

				return m, m.overviewView.Init()
			case "2":
				m.currentView = ViewInvoices
				m.invoicesView = view.NewInvoicesModel(m.invoiceService, m.customerService)

				return m, m.invoicesView.Init()
			case "3":
				m.currentView = ViewCustomers
				m.customersView = view.NewCustomersModel(m.customerService)

				return m, m.customersView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewOverview:
		var newModel tea.Model
		newModel, cmd = m.overviewView.Update(msg)
		m.overviewView = newModel.(view.OverviewModel)
	case ViewInvoices:
		var newModel tea.Model
		newModel, cmd = m.invoicesView.Update(msg)
		m.invoicesView = newModel.(view.InvoicesModel)
	case ViewCustomers:
		var newModel tea.Model
		newModel, cmd = m.customersView.Update(msg)
		m.customersView = newModel.(view.CustomersModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Acme Dashboard\n\n" +
				"1. Overview\n" +
				"2. Invoices\n" +
				"3. Customers\n\n" +
				"q. Quit",
		)
	case ViewOverview:
		return m.overviewView.View()
	case ViewInvoices:
		return m.invoicesView.View()
	case ViewCustomers:
		return m.customersView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
