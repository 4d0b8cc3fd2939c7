package menu

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

// MenuForm echoes the submitted values back after a rejected add.
type MenuForm struct {
	Name  string
	Price string
}

type MenuView struct {
	Items []*MenuItem
	Form  MenuForm
}

type MenuHandler struct {
	service MenuService
	render  web.Renderer
	log     zerolog.Logger
}

func NewMenuHandler(service MenuService, render web.Renderer, log zerolog.Logger) *MenuHandler {
	return &MenuHandler{service: service, render: render, log: log}
}

func (h *MenuHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/menu", h.HandleList).Methods(http.MethodGet)
	r.HandleFunc("/add_item", h.HandleCreate).Methods(http.MethodPost)
	r.HandleFunc("/delete_item/{id}", h.HandleDelete).Methods(http.MethodGet)
}

// LIST
func (h *MenuHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, "", MenuForm{})
}

// CREATE
func (h *MenuHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	form := MenuForm{
		Name:  r.PostFormValue("name"),
		Price: r.PostFormValue("price"),
	}

	item, err := h.service.CreateItem(r.Context(), form.Name, form.Price)
	if errors.Is(err, utils.ErrValidation) {
		h.renderPage(w, r, http.StatusBadRequest, utils.ValidationMessage(err), form)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("failed to add menu item")
		web.ServerError(w, h.render, true)
		return
	}

	h.log.Info().Int(logging.ID, item.Id).Str("name", item.Name).Msg("menu item added")
	http.Redirect(w, r, "/menu", http.StatusSeeOther)
}

// DELETE is best effort: a missing id or store failure still lands back on the menu.
func (h *MenuHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if id, err := strconv.Atoi(mux.Vars(r)["id"]); err == nil {
		if err := h.service.DeleteItem(r.Context(), id); err != nil {
			h.log.Debug().Err(err).Int(logging.ID, id).Msg("delete menu item ignored")
		}
	}
	http.Redirect(w, r, "/menu", http.StatusSeeOther)
}

func (h *MenuHandler) renderPage(w http.ResponseWriter, r *http.Request, status int, msg string, form MenuForm) {
	items, err := h.service.ListItems(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list menu items")
		web.ServerError(w, h.render, true)
		return
	}

	h.render.Render(w, status, "menu", web.Page{
		Title: "Menu",
		Nav:   true,
		Error: msg,
		Data:  MenuView{Items: items, Form: form},
	})
}
