package view

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/ledgerboard/internal/customer"
	"github.com/MrJamesThe3rd/ledgerboard/internal/invoice"
)

type invoicesState int

const (
	invoicesStateBrowse invoicesState = iota
	invoicesStateSearch
	invoicesStateForm
	invoicesStateConfirm
)

type InvoicesModel struct {
	invoices  *invoice.Service
	customers *customer.Service

	state  invoicesState
	table  table.Model
	search textinput.Model
	page   *invoice.Page
	query  string
	number int

	// form bindings live on the heap so they survive the model being copied
	form      *huh.Form
	editingID uuid.UUID
	input     *invoice.FormInput
	confirmed *bool

	loading bool
	err     error
	status  string
}

func NewInvoicesModel(invoices *invoice.Service, customers *customer.Service) InvoicesModel {
	columns := []table.Column{
		{Title: "Customer", Width: 22},
		{Title: "Email", Width: 26},
		{Title: "Amount", Width: 12},
		{Title: "Date", Width: 13},
		{Title: "Status", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(invoice.ItemsPerPage+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	ti := textinput.New()
	ti.Placeholder = "Search invoices..."
	ti.Width = 40

	return InvoicesModel{
		invoices:  invoices,
		customers: customers,
		table:     t,
		search:    ti,
		number:    1,
		loading:   true,
	}
}

func (m InvoicesModel) Title() string { return "Invoices" }
func (m InvoicesModel) ShortHelp() string {
	switch m.state {
	case invoicesStateSearch:
		return "Enter: search | Esc: cancel"
	case invoicesStateForm, invoicesStateConfirm:
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | /: search | n/p: page | c: create | e: edit | x: delete | r: refresh"
}

func (m InvoicesModel) Init() tea.Cmd {
	return m.loadPageCmd()
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPageMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.page = msg.page
		m.refreshTable()

		return m, nil

	case formDataMsg:
		if msg.err != nil {
			m.status = errorMessage(msg.err)
			return m, nil
		}

		return m.openForm(msg.id, msg.input, msg.options)

	case mutationMsg:
		m.closeForm()

		if msg.err != nil {
			m.status = errorMessage(msg.err)
			return m, nil
		}

		m.status = msg.message

		return m, m.loadPageCmd()
	}

	switch m.state {
	case invoicesStateSearch:
		return m.updateSearch(msg)
	case invoicesStateForm:
		return m.updateForm(msg)
	case invoicesStateConfirm:
		return m.updateConfirm(msg)
	}

	return m.updateBrowse(msg)
}

func (m InvoicesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadPageCmd()
		case "/":
			m.state = invoicesStateSearch
			m.table.Blur()
			m.search.Focus()

			return m, textinput.Blink
		case "n":
			if m.page != nil && m.number < m.page.TotalPages {
				m.number++
				return m, m.loadPageCmd()
			}
		case "p":
			if m.number > 1 {
				m.number--
				return m, m.loadPageCmd()
			}
		case "c":
			return m, m.loadFormDataCmd(uuid.Nil)
		case "e":
			if row := m.selected(); row != nil {
				return m, m.loadFormDataCmd(row.ID)
			}
		case "x":
			return m.openConfirm()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InvoicesModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.state = invoicesStateBrowse
			m.search.Blur()
			m.search.SetValue(m.query)
			m.table.Focus()

			return m, nil
		case tea.KeyEnter:
			m.state = invoicesStateBrowse
			m.query = strings.TrimSpace(m.search.Value())
			m.number = 1
			m.search.Blur()
			m.table.Focus()

			return m, m.loadPageCmd()
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m InvoicesModel) openForm(id uuid.UUID, in invoice.FormInput, opts []customer.Option) (tea.Model, tea.Cmd) {
	m.editingID = id
	m.input = &in

	customerOpts := make([]huh.Option[string], 0, len(opts))
	for _, o := range opts {
		customerOpts = append(customerOpts, huh.NewOption(o.Name, o.ID.String()))
	}

	statusOpts := make([]huh.Option[string], 0, len(invoice.Statuses))
	for _, s := range invoice.Statuses {
		statusOpts = append(statusOpts, huh.NewOption(FormatStatus(s), string(s)))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("customerId").
				Title("Customer").
				Options(customerOpts...).
				Value(&m.input.CustomerID),

			huh.NewInput().
				Key("amount").
				Title("Amount (USD)").
				Placeholder("0.00").
				Value(&m.input.Amount),

			huh.NewSelect[string]().
				Key("status").
				Title("Status").
				Options(statusOpts...).
				Value(&m.input.Status),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = invoicesStateForm
	m.status = ""
	m.table.Blur()

	return m, m.form.Init()
}

func (m InvoicesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd, done := m.advanceForm(msg)
	if !done {
		return m, cmd
	}

	return m, m.saveCmd()
}

// advanceForm feeds msg to the open form. Esc closes it; done reports a completed form.
func (m InvoicesModel) advanceForm(msg tea.Msg) (InvoicesModel, tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil, false
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	return m, cmd, m.form.State == huh.StateCompleted
}

func (m *InvoicesModel) closeForm() {
	m.state = invoicesStateBrowse
	m.form = nil
	m.table.Focus()
}

func (m InvoicesModel) openConfirm() (tea.Model, tea.Cmd) {
	row := m.selected()
	if row == nil {
		return m, nil
	}

	m.editingID = row.ID
	m.confirmed = new(false)
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete the %s invoice for %s?", FormatCurrency(row.Amount), row.Name)).
				Affirmative("Delete").
				Negative("Cancel").
				Value(m.confirmed),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = invoicesStateConfirm
	m.table.Blur()

	return m, m.form.Init()
}

func (m InvoicesModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd, done := m.advanceForm(msg)
	if !done {
		return m, cmd
	}

	if !*m.confirmed {
		m.closeForm()
		return m, nil
	}

	return m, m.deleteCmd(m.editingID)
}

func (m InvoicesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf("Search: %s", m.search.View())
	if m.state != invoicesStateSearch && m.query == "" {
		header = "Search: " + lipgloss.NewStyle().Faint(true).Render("(press / to search)")
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		m.paginationView(),
	)

	if (m.state == invoicesStateForm || m.state == invoicesStateConfirm) && m.form != nil {
		title := "Create Invoice"
		if m.state == invoicesStateConfirm {
			title = "Delete Invoice"
		} else if m.editingID != uuid.Nil {
			title = "Edit Invoice"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content + "\n" + lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()))
}

func (m InvoicesModel) paginationView() string {
	if m.page == nil {
		return ""
	}

	links := m.page.Links()
	parts := make([]string, len(links))

	current := fmt.Sprint(m.page.CurrentPage)
	for i, l := range links {
		if l == current {
			parts[i] = activeStyle("[" + l + "]")
		} else {
			parts[i] = l
		}
	}

	return strings.Join(parts, " ")
}

func (m InvoicesModel) selected() *invoice.Row {
	if m.page == nil {
		return nil
	}

	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.page.Rows) {
		return nil
	}

	return m.page.Rows[idx]
}

func (m *InvoicesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.page.Rows))
	for _, r := range m.page.Rows {
		rows = append(rows, table.Row{
			r.Name,
			r.Email,
			FormatCurrency(r.Amount),
			FormatDate(r.Date),
			string(r.Status),
		})
	}

	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

// errorMessage flattens an invoice error and its field messages into one status line.
func errorMessage(err error) string {
	var ie *invoice.Error
	if !errors.As(err, &ie) {
		return fmt.Sprintf("Error: %v", err)
	}

	msgs := []string{ie.Message}

	keys := make([]string, 0, len(ie.Fields))
	for k := range ie.Fields {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	for _, k := range keys {
		msgs = append(msgs, ie.Fields[k]...)
	}

	return errorStyle(strings.Join(msgs, " "))
}

// Messages

type loadPageMsg struct {
	page *invoice.Page
	err  error
}

func (m InvoicesModel) loadPageCmd() tea.Cmd {
	query, number := m.query, m.number

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		page, err := m.invoices.List(ctx, query, number)

		return loadPageMsg{page: page, err: err}
	}
}

type formDataMsg struct {
	id      uuid.UUID
	input   invoice.FormInput
	options []customer.Option
	err     error
}

// loadFormDataCmd fetches the customer list and, when editing, the invoice at the same time.
func (m InvoicesModel) loadFormDataCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		msg := formDataMsg{id: id, input: invoice.FormInput{Status: string(invoice.StatusPending)}}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			msg.options, err = m.customers.Options(gctx)

			return err
		})

		if id != uuid.Nil {
			g.Go(func() error {
				inv, err := m.invoices.Get(gctx, id)
				if err != nil {
					return err
				}

				msg.input = invoice.FormInputFromInvoice(inv)

				return nil
			})
		}

		msg.err = g.Wait()

		return msg
	}
}

type mutationMsg struct {
	message string
	err     error
}

func (m InvoicesModel) saveCmd() tea.Cmd {
	id, in := m.editingID, *m.input

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if id == uuid.Nil {
			if _, err := m.invoices.Create(ctx, in); err != nil {
				return mutationMsg{err: err}
			}

			return mutationMsg{message: "Invoice created."}
		}

		if err := m.invoices.Edit(ctx, id, in); err != nil {
			return mutationMsg{err: err}
		}

		return mutationMsg{message: "Invoice updated."}
	}
}

func (m InvoicesModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		msg, err := m.invoices.Delete(ctx, id)

		return mutationMsg{message: msg, err: err}
	}
}
