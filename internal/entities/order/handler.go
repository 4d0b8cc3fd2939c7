package order

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/iteranya/restaurant-pos/internal/entities/menu"
	"github.com/iteranya/restaurant-pos/internal/logging"
	"github.com/iteranya/restaurant-pos/internal/metrics"
	"github.com/iteranya/restaurant-pos/internal/utils"
	"github.com/iteranya/restaurant-pos/internal/web"
)

// MenuLister feeds the item picker on the order page.
type MenuLister interface {
	ListItems(ctx context.Context) ([]*menu.MenuItem, error)
}

type OrderForm struct {
	ItemID   string
	Quantity string
}

type OrderView struct {
	Items  []*menu.MenuItem
	Orders []*Order
	Form   OrderForm
}

type OrderHandler struct {
	service OrderService
	menu    MenuLister
	render  web.Renderer
	metrics *metrics.Metrics
	log     zerolog.Logger
}

func NewOrderHandler(service OrderService, menu MenuLister, render web.Renderer, m *metrics.Metrics, log zerolog.Logger) *OrderHandler {
	return &OrderHandler{service: service, menu: menu, render: render, metrics: m, log: log}
}

func (h *OrderHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/order", h.HandleList).Methods(http.MethodGet)
	r.HandleFunc("/add_order", h.HandleCreate).Methods(http.MethodPost)
	r.HandleFunc("/delete_order/{id}", h.HandleDelete).Methods(http.MethodGet)
}

// LIST
func (h *OrderHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, "", OrderForm{})
}

// CREATE
func (h *OrderHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	form := OrderForm{
		ItemID:   r.PostFormValue("item_id"),
		Quantity: r.PostFormValue("quantity"),
	}

	order, err := h.service.PlaceOrder(r.Context(), form.ItemID, form.Quantity)
	switch {
	case errors.Is(err, utils.ErrValidation):
		h.renderPage(w, r, http.StatusBadRequest, utils.ValidationMessage(err), form)
		return
	case errors.Is(err, menu.ErrItemNotFound):
		// item vanished between page load and submit; nothing to record
		h.log.Debug().Str("item_id", form.ItemID).Msg("order for unknown menu item ignored")
	case err != nil:
		h.log.Error().Err(err).Msg("failed to place order")
		web.ServerError(w, h.render, true)
		return
	default:
		h.metrics.OrderPlaced()
		h.log.Info().Int(logging.ID, order.Id).Str("item", order.ItemName).Int("quantity", order.Quantity).Msg("order placed")
	}

	http.Redirect(w, r, "/order", http.StatusSeeOther)
}

// DELETE is best effort.
func (h *OrderHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if id, err := strconv.Atoi(mux.Vars(r)["id"]); err == nil {
		if err := h.service.DeleteOrder(r.Context(), id); err != nil {
			h.log.Debug().Err(err).Int(logging.ID, id).Msg("delete order ignored")
		}
	}
	http.Redirect(w, r, "/order", http.StatusSeeOther)
}

func (h *OrderHandler) renderPage(w http.ResponseWriter, r *http.Request, status int, msg string, form OrderForm) {
	items, err := h.menu.ListItems(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list menu items")
		web.ServerError(w, h.render, true)
		return
	}

	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list orders")
		web.ServerError(w, h.render, true)
		return
	}

	h.render.Render(w, status, "order", web.Page{
		Title: "Orders",
		Nav:   true,
		Error: msg,
		Data:  OrderView{Items: items, Orders: orders, Form: form},
	})
}
