package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	Id    int
	Name  string
	Price string
}

type testMenuView struct {
	Items []testItem
	Form  struct{ Name, Price string }
}

func newRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	r, err := NewTemplateRenderer(zerolog.Nop())
	require.NoError(t, err)
	return r
}

func TestTemplateRenderer_ParsesAllPages(t *testing.T) {
	r := newRenderer(t)
	for name := range pages {
		assert.Contains(t, r.pages, name)
	}
}

func TestTemplateRenderer_Render(t *testing.T) {
	r := newRenderer(t)
	rec := httptest.NewRecorder()

	r.Render(rec, http.StatusBadRequest, "menu", Page{
		Title: "Menu",
		Nav:   true,
		Error: "Price cannot be negative",
		Data:  testMenuView{Items: []testItem{{Id: 1, Name: "Fish & Chips", Price: "120.00"}}},
	})

	body := rec.Body.String()
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, "Price cannot be negative")
	assert.Contains(t, body, "Fish &amp; Chips")
	assert.Contains(t, body, "/delete_item/1")
	assert.Contains(t, body, `href="/logout"`)
}

func TestTemplateRenderer_EscapesInput(t *testing.T) {
	r := newRenderer(t)
	rec := httptest.NewRecorder()

	r.Render(rec, http.StatusUnauthorized, "login", Page{
		Title: "Login",
		Error: "bad",
		Data:  struct{ Username string }{Username: `"><script>alert(1)</script>`},
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, strings.Contains(rec.Body.String(), "<script>alert(1)</script>"))
	assert.NotContains(t, rec.Body.String(), `href="/logout"`)
}

func TestTemplateRenderer_UnknownPage(t *testing.T) {
	r := newRenderer(t)
	rec := httptest.NewRecorder()

	r.Render(rec, http.StatusOK, "nope", Page{})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestTemplateRenderer_BadDataIsServerError(t *testing.T) {
	r := newRenderer(t)
	rec := httptest.NewRecorder()

	// menu expects .Data.Items
	r.Render(rec, http.StatusOK, "menu", Page{Data: struct{}{}})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServerError(t *testing.T) {
	r := newRenderer(t)
	rec := httptest.NewRecorder()

	ServerError(rec, r, true)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), GenericFailure)
}
