package order

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iteranya/restaurant-pos/internal/entities/menu"
	"github.com/iteranya/restaurant-pos/internal/metrics"
	"github.com/iteranya/restaurant-pos/internal/utils"
	"github.com/iteranya/restaurant-pos/internal/web"
)

type recordingRenderer struct {
	status int
	name   string
	page   web.Page
}

func (r *recordingRenderer) Render(w http.ResponseWriter, status int, name string, page web.Page) {
	r.status, r.name, r.page = status, name, page
	w.WriteHeader(status)
}

func setup() (*fakeRepo, *fakeMenu, *recordingRenderer, *mux.Router) {
	repo := &fakeRepo{}
	m := &fakeMenu{items: map[int]*menu.MenuItem{
		1: {Id: 1, Name: "Tea", Price: 1500},
		2: {Id: 2, Name: "Dosa", Price: 8550},
	}}
	rr := &recordingRenderer{}
	router := mux.NewRouter()
	NewOrderHandler(NewOrderService(repo, m), m, rr, metrics.New(), zerolog.Nop()).RegisterRoutes(router)
	return repo, m, rr, router
}

func postForm(router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestOrderHandler_AddOrder(t *testing.T) {
	repo, _, _, router := setup()

	rec := postForm(router, "/add_order", url.Values{"item_id": {"2"}, "quantity": {"2"}})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/order", rec.Header().Get("Location"))
	require.Len(t, repo.orders, 1)
	assert.Equal(t, "Dosa", repo.orders[0].ItemName)
	assert.Equal(t, utils.Money(17100), repo.orders[0].Total)
}

func TestOrderHandler_AddOrder_UnknownItemIsNoOp(t *testing.T) {
	repo, _, rr, router := setup()

	rec := postForm(router, "/add_order", url.Values{"item_id": {"77"}, "quantity": {"1"}})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/order", rec.Header().Get("Location"))
	assert.Empty(t, repo.orders)
	assert.Equal(t, "", rr.name)
}

func TestOrderHandler_AddOrder_ValidationRerenders(t *testing.T) {
	repo, _, rr, router := setup()
	repo.orders = []*Order{{Id: 1, ItemName: "Tea", Quantity: 1, Total: 1500}}

	rec := postForm(router, "/add_order", url.Values{"item_id": {"1"}, "quantity": {"0"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "order", rr.name)
	assert.Equal(t, "Quantity must be between 1 and 10000", rr.page.Error)
	view := rr.page.Data.(OrderView)
	assert.Len(t, view.Items, 2)
	assert.Len(t, view.Orders, 1)
	assert.Equal(t, OrderForm{ItemID: "1", Quantity: "0"}, view.Form)
}

func TestOrderHandler_AddOrder_MissingSelection(t *testing.T) {
	_, _, rr, router := setup()

	rec := postForm(router, "/add_order", url.Values{"quantity": {"3"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please select an item", rr.page.Error)
}

func TestOrderHandler_AddOrder_StoreFailure(t *testing.T) {
	repo, _, rr, router := setup()
	repo.err = errors.New("db down")

	rec := postForm(router, "/add_order", url.Values{"item_id": {"1"}, "quantity": {"1"}})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "error", rr.name)
	assert.Equal(t, web.GenericFailure, rr.page.Error)
}

func TestOrderHandler_List_MenuFailure(t *testing.T) {
	_, m, rr, router := setup()
	m.err = errors.New("db down")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/order", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "error", rr.name)
}

func TestOrderHandler_Delete_IsBestEffort(t *testing.T) {
	for _, path := range []string{"/delete_order/1", "/delete_order/42", "/delete_order/x"} {
		t.Run(path, func(t *testing.T) {
			repo, _, _, router := setup()
			repo.orders = []*Order{{Id: 1, ItemName: "Tea", Quantity: 1, Total: 1500}}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/order", rec.Header().Get("Location"))
		})
	}
}
