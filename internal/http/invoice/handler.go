package invoice

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/ledgerboard/internal/cache"
	"github.com/MrJamesThe3rd/ledgerboard/internal/customer"
	"github.com/MrJamesThe3rd/ledgerboard/internal/http/middleware"
	"github.com/MrJamesThe3rd/ledgerboard/internal/http/render"
	"github.com/MrJamesThe3rd/ledgerboard/internal/invoice"
	"github.com/MrJamesThe3rd/ledgerboard/internal/metrics"
)

// ListPath is the invoices table. Every mutation invalidates it.
const ListPath = "/dashboard/invoices"

// CustomersPath shows per-customer totals, which change with every invoice mutation.
const CustomersPath = "/dashboard/customers"

const msgInvoiceMissing = "Could not find the requested invoice."

type Handler struct {
	invoices  *invoice.Service
	customers *customer.Service
	render    *render.Renderer
	views     *cache.Views
	metrics   *metrics.Metrics
}

func NewHandler(
	invoices *invoice.Service,
	customers *customer.Service,
	r *render.Renderer,
	views *cache.Views,
	m *metrics.Metrics,
) *Handler {
	return &Handler{
		invoices:  invoices,
		customers: customers,
		render:    r,
		views:     views,
		metrics:   m,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(middleware.CacheViews(h.views, h.metrics)).Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/create", h.createPage)
	r.Get("/{id}/edit", h.editPage)
	r.Post("/{id}/edit", h.edit)
	r.Post("/{id}/delete", h.delete)
}

type listView struct {
	Page    *invoice.Page
	Message string
}

type formView struct {
	Action    string
	Submit    string
	Form      invoice.FormInput
	Customers []customer.Option
	Statuses  []invoice.Status
	Errors    invoice.FieldErrors
	Message   string
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, http.StatusOK, r.URL.Query().Get("query"), pageParam(r.URL.Query().Get("page")), "")
}

func (h *Handler) renderList(w http.ResponseWriter, r *http.Request, status int, query string, page int, msg string) {
	p, err := h.invoices.List(r.Context(), query, page)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.page(w, r, status, "invoices", "Invoices", listView{Page: p, Message: msg})
}

func (h *Handler) createPage(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, "create", newCreateView(invoice.FormInput{}))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	in := invoice.FormInputFromValues(r.PostForm)

	if _, err := h.invoices.Create(r.Context(), in); err != nil {
		h.metrics.RecordMutation("create", outcome(err))
		h.formError(w, r, "create", newCreateView(in), err)

		return
	}

	h.metrics.RecordMutation("create", "ok")
	h.invalidate()
	http.Redirect(w, r, ListPath, http.StatusSeeOther)
}

// editPage loads the invoice and the customer list concurrently. Either failing fails the page;
// a missing invoice (or an id that cannot exist) is a 404.
func (h *Handler) editPage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.invoiceID(w, r)
	if !ok {
		return
	}

	var (
		inv  *invoice.Invoice
		opts []customer.Option
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		inv, err = h.invoices.Get(ctx, id)

		return err
	})
	g.Go(func() error {
		var err error
		opts, err = h.customers.Options(ctx)

		return err
	})

	if err := g.Wait(); err != nil {
		h.fail(w, r, err)
		return
	}

	v := newEditView(id, invoice.FormInputFromInvoice(inv))
	v.Customers = opts

	h.page(w, r, http.StatusOK, "edit", "Edit Invoice", v)
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.invoiceID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	in := invoice.FormInputFromValues(r.PostForm)

	if err := h.invoices.Edit(r.Context(), id, in); err != nil {
		h.metrics.RecordMutation("edit", outcome(err))
		h.formError(w, r, "edit", newEditView(id, in), err)

		return
	}

	h.metrics.RecordMutation("edit", "ok")
	h.invalidate()
	http.Redirect(w, r, ListPath, http.StatusSeeOther)
}

// delete does not redirect: the table is rendered again in place with the outcome message.
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.invoiceID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	query, page := r.PostForm.Get("query"), pageParam(r.PostForm.Get("page"))

	msg, err := h.invoices.Delete(r.Context(), id)
	if err != nil {
		h.metrics.RecordMutation("delete", outcome(err))
		slog.Error("failed to delete invoice", "id", id, "error", err)

		failMsg := invoice.MsgDeleteFailed

		var ie *invoice.Error
		if errors.As(err, &ie) {
			failMsg = ie.Message
		}

		h.renderList(w, r, http.StatusInternalServerError, query, page, failMsg)

		return
	}

	h.metrics.RecordMutation("delete", "ok")
	h.invalidate()
	h.renderList(w, r, http.StatusOK, query, page, msg)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, page string, v formView) {
	opts, err := h.customers.Options(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	v.Customers = opts

	title := "Create Invoice"
	if page == "edit" {
		title = "Edit Invoice"
	}

	h.page(w, r, status, page, title, v)
}

// formError shows the submitted form again: 422 with field errors, 500 when the store failed.
func (h *Handler) formError(w http.ResponseWriter, r *http.Request, page string, v formView, err error) {
	var ie *invoice.Error
	if !errors.As(err, &ie) {
		h.fail(w, r, err)
		return
	}

	v.Message = ie.Message
	v.Errors = ie.Fields

	status := http.StatusUnprocessableEntity
	if ie.Kind != invoice.KindValidation {
		slog.Error("failed to save invoice", "error", err)

		status = http.StatusInternalServerError
	}

	h.renderForm(w, r, status, page, v)
}

func (h *Handler) invoiceID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.page(w, r, http.StatusNotFound, "notfound", "Not Found", msgInvoiceMissing)
		return uuid.Nil, false
	}

	return id, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if invoice.KindOf(err) == invoice.KindNotFound {
		h.page(w, r, http.StatusNotFound, "notfound", "Not Found", msgInvoiceMissing)
		return
	}

	slog.Error("failed to load invoices page", "path", r.URL.Path, "error", err)

	msg := "Database Error: Failed to load the page."

	var ie *invoice.Error
	if errors.As(err, &ie) {
		msg = ie.Message
	}

	h.page(w, r, http.StatusInternalServerError, "error", "Error", msg)
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	if err := h.render.Page(w, status, page, render.View{Title: title, Path: r.URL.Path, Data: data}); err != nil {
		slog.Error("failed to render page", "page", page, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *Handler) invalidate() {
	h.views.Invalidate(ListPath)
	h.views.Invalidate(CustomersPath)
}

func newCreateView(in invoice.FormInput) formView {
	return formView{
		Action:   ListPath,
		Submit:   "Create Invoice",
		Form:     in,
		Statuses: invoice.Statuses,
	}
}

func newEditView(id uuid.UUID, in invoice.FormInput) formView {
	return formView{
		Action:   ListPath + "/" + id.String() + "/edit",
		Submit:   "Edit Invoice",
		Form:     in,
		Statuses: invoice.Statuses,
	}
}

func pageParam(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}

	return n
}

func outcome(err error) string {
	if k := invoice.KindOf(err); k != 0 {
		return k.String()
	}

	return "error"
}
