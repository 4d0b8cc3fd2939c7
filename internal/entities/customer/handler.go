package customer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/iteranya/restaurant-pos/internal/logging"
	"github.com/iteranya/restaurant-pos/internal/utils"
	"github.com/iteranya/restaurant-pos/internal/web"
)

type CustomerForm struct {
	Name  string
	Phone string
}

type CustomerView struct {
	Customers []*Customer
	Form      CustomerForm
}

type CustomerHandler struct {
	service CustomerService
	render  web.Renderer
	log     zerolog.Logger
}

func NewCustomerHandler(service CustomerService, render web.Renderer, log zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{service: service, render: render, log: log}
}

func (h *CustomerHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/customers", h.HandleList).Methods(http.MethodGet)
	r.HandleFunc("/add_customer", h.HandleCreate).Methods(http.MethodPost)
	r.HandleFunc("/delete_customer/{id}", h.HandleDelete).Methods(http.MethodGet)
}

// LIST
func (h *CustomerHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, "", CustomerForm{})
}

// CREATE
func (h *CustomerHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	form := CustomerForm{
		Name:  r.PostFormValue("name"),
		Phone: r.PostFormValue("phone"),
	}

	c, err := h.service.CreateCustomer(r.Context(), form.Name, form.Phone)
	if errors.Is(err, utils.ErrValidation) {
		h.renderPage(w, r, http.StatusBadRequest, utils.ValidationMessage(err), form)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("failed to add customer")
		web.ServerError(w, h.render, true)
		return
	}

	h.log.Info().Int(logging.ID, c.Id).Msg("customer added")
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}

// DELETE
func (h *CustomerHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if id, err := strconv.Atoi(mux.Vars(r)["id"]); err == nil {
		if err := h.service.DeleteCustomer(r.Context(), id); err != nil {
			h.log.Debug().Err(err).Int(logging.ID, id).Msg("delete customer ignored")
		}
	}
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}

func (h *CustomerHandler) renderPage(w http.ResponseWriter, r *http.Request, status int, msg string, form CustomerForm) {
	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list customers")
		web.ServerError(w, h.render, true)
		return
	}

	h.render.Render(w, status, "customers", web.Page{
		Title: "Customers",
		Nav:   true,
		Error: msg,
		Data:  CustomerView{Customers: customers, Form: form},
	})
}
