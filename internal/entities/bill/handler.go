package bill

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/iteranya/restaurant-pos/internal/entities/customer"
	"github.com/iteranya/restaurant-pos/internal/entities/order"
	"github.com/iteranya/restaurant-pos/internal/logging"
	"github.com/iteranya/restaurant-pos/internal/utils"
	"github.com/iteranya/restaurant-pos/internal/web"
)

type ReportView struct {
	Orders  []*order.Order
	Summary Summary
	Sales   SalesHistory
}

type CustomerForm struct {
	Name  string
	Phone string
}

type BillView struct {
	Orders    []*order.Order
	Summary   Summary
	Customer  *customer.Customer
	AutoPrint bool
	Form      CustomerForm
}

type PrintView struct {
	Date    string
	Orders  []*order.Order
	Summary Summary
}

type BillHandler struct {
	service BillService
	render  web.Renderer
	log     zerolog.Logger
	now     func() time.Time
}

func NewBillHandler(service BillService, render web.Renderer, log zerolog.Logger) *BillHandler {
	return &BillHandler{service: service, render: render, log: log, now: time.Now}
}

func (h *BillHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/reports", h.HandleReports).Methods(http.MethodGet)
	r.HandleFunc("/clear_reports", h.HandleClear).Methods(http.MethodPost)
	r.HandleFunc("/generate_bill", h.HandleBill).Methods(http.MethodGet)
	r.HandleFunc("/save_customer_and_print", h.HandleFinalize).Methods(http.MethodPost)
	r.HandleFunc("/bill_print", h.HandlePrint).Methods(http.MethodGet)
}

func (h *BillHandler) HandleReports(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Current(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to build report")
		web.ServerError(w, h.render, true)
		return
	}
	sales, err := h.service.History(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list sales")
		web.ServerError(w, h.render, true)
		return
	}

	h.render.Render(w, http.StatusOK, "reports", web.Page{
		Title: "Reports",
		Nav:   true,
		Data:  ReportView{Orders: b.Orders, Summary: b.Summary, Sales: *sales},
	})
}

// HandleClear is best effort; the report page shows whatever survived.
func (h *BillHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	orders, sales, err := h.service.ClearHistory(r.Context())
	if err != nil {
		h.log.Debug().Err(err).Msg("clear history ignored")
	} else {
		h.log.Info().Int64("orders", orders).Int64("sales", sales).Msg("history cleared")
	}
	http.Redirect(w, r, "/reports", http.StatusSeeOther)
}

// HandleBill shows the current bill. After a finalize it is reached with
// ?customer=<id>&print=1, which shows the saved customer and opens the print view.
func (h *BillHandler) HandleBill(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var cust *customer.Customer
	if id, err := strconv.Atoi(q.Get("customer")); err == nil {
		cust, err = h.service.Customer(r.Context(), id)
		if errors.Is(err, customer.ErrCustomerNotFound) {
			cust = nil
		} else if err != nil {
			h.log.Error().Err(err).Int(logging.ID, id).Msg("failed to load customer")
			web.ServerError(w, h.render, true)
			return
		}
	}

	b, err := h.service.Current(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to build bill")
		web.ServerError(w, h.render, true)
		return
	}

	page := web.Page{
		Title: "Bill",
		Nav:   true,
		Data: BillView{
			Orders:    b.Orders,
			Summary:   b.Summary,
			Customer:  cust,
			AutoPrint: cust != nil && q.Get("print") == "1",
		},
	}
	if cust != nil {
		page.Notice = "Customer saved."
	}
	h.render.Render(w, http.StatusOK, "bill", page)
}

func (h *BillHandler) HandleFinalize(w http.ResponseWriter, r *http.Request) {
	form := CustomerForm{
		Name:  r.PostFormValue("name"),
		Phone: r.PostFormValue("phone"),
	}

	b, cust, err := h.service.Finalize(r.Context(), form.Name, form.Phone)
	if errors.Is(err, utils.ErrValidation) {
		h.renderBill(w, r, http.StatusBadRequest, utils.ValidationMessage(err), form)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("failed to finalize bill")
		web.ServerError(w, h.render, true)
		return
	}

	h.log.Info().Int("customer", cust.Id).Str("grand_total", b.Summary.GrandTotal.String()).Msg("bill finalized")
	http.Redirect(w, r, fmt.Sprintf("/generate_bill?customer=%d&print=1", cust.Id), http.StatusSeeOther)
}

func (h *BillHandler) HandlePrint(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Current(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to build printable bill")
		web.ServerError(w, h.render, false)
		return
	}

	h.render.Render(w, http.StatusOK, "bill_print", web.Page{
		Title: "Bill",
		Data: PrintView{
			Date:    h.now().Format("02 Jan 2006 15:04"),
			Orders:  b.Orders,
			Summary: b.Summary,
		},
	})
}

func (h *BillHandler) renderBill(w http.ResponseWriter, r *http.Request, status int, msg string, form CustomerForm) {
	b, err := h.service.Current(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to build bill")
		web.ServerError(w, h.render, true)
		return
	}

	h.render.Render(w, status, "bill", web.Page{
		Title: "Bill",
		Nav:   true,
		Error: msg,
		Data:  BillView{Orders: b.Orders, Summary: b.Summary, Form: form},
	})
}
