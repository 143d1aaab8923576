package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/catalogworks/go-catalog-server/catalog"
	"github.com/stretchr/testify/require"
)

func (ts *testServer) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return ts.do(req)
}

func (ts *testServer) seedCatalog(t *testing.T) (catalog.Category, catalog.Item) {
	t.Helper()
	category, err := ts.catalog.CreateCategory("Soccer")
	require.NoError(t, err)
	item, err := ts.catalog.CreateItem("Ball", "A soccer ball", category.ID)
	require.NoError(t, err)
	return category, item
}

func TestHomepage(t *testing.T) {
	ts := newTestServer(t)
	category, item := ts.seedCatalog(t)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	require.Contains(t, rec.Body.String(), category.Name)
	require.Contains(t, rec.Body.String(), item.Name)
}

func TestCategoryPage(t *testing.T) {
	ts := newTestServer(t)
	category, item := ts.seedCatalog(t)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/categories/1/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), category.Name)
	require.Contains(t, rec.Body.String(), item.Name)
}

func TestCategoryPageNotFound(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/categories/42/", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/categories/bogus/", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestItemPage(t *testing.T) {
	ts := newTestServer(t)
	category, item := ts.seedCatalog(t)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/items/1/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), item.Name)
	require.Contains(t, rec.Body.String(), item.Description)
	require.Contains(t, rec.Body.String(), category.Name)
}

func TestCreateItem(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.postForm("/items/new/", url.Values{
		"item_name":   {"Snowboard"},
		"description": {"Best for any terrain"},
		"category":    {"Snowboarding"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/items/1/", rec.Header().Get("Location"))

	// Naming an unknown category creates it alongside the item.
	category, err := ts.catalog.FindCategoryByName("Snowboarding")
	require.NoError(t, err)
	item, err := ts.catalog.GetItem(1)
	require.NoError(t, err)
	require.Equal(t, category.ID, item.CategoryID)
}

func TestCreateItemMissingFields(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.postForm("/items/new/", url.Values{"item_name": {"Snowboard"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.postForm("/items/new/", url.Values{"category": {"Snowboarding"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateItemKeepsEmptyFields(t *testing.T) {
	ts := newTestServer(t)
	_, item := ts.seedCatalog(t)

	rec := ts.postForm("/items/1/update/", url.Values{"description": {"New description"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	updated, err := ts.catalog.GetItem(item.ID)
	require.NoError(t, err)
	require.Equal(t, item.Name, updated.Name, "an empty name keeps the existing one")
	require.Equal(t, "New description", updated.Description)
	require.Equal(t, item.CategoryID, updated.CategoryID)
}

func TestUpdateItemMovesToNewCategory(t *testing.T) {
	ts := newTestServer(t)
	ts.seedCatalog(t)

	rec := ts.postForm("/items/1/update/", url.Values{"category": {"Hockey"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	category, err := ts.catalog.FindCategoryByName("Hockey")
	require.NoError(t, err)
	updated, err := ts.catalog.GetItem(1)
	require.NoError(t, err)
	require.Equal(t, category.ID, updated.CategoryID)
}

func TestDeleteItem(t *testing.T) {
	ts := newTestServer(t)
	_, item := ts.seedCatalog(t)

	rec := ts.postForm("/items/1/delete/", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	_, err := ts.catalog.GetItem(item.ID)
	require.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestRenameCategory(t *testing.T) {
	ts := newTestServer(t)
	category, _ := ts.seedCatalog(t)

	rec := ts.postForm("/categories/1/update/", url.Values{"category": {"Football"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/categories/1/", rec.Header().Get("Location"))

	renamed, err := ts.catalog.GetCategory(category.ID)
	require.NoError(t, err)
	require.Equal(t, "Football", renamed.Name)

	// An empty submission keeps the current name.
	rec = ts.postForm("/categories/1/update/", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	kept, err := ts.catalog.GetCategory(category.ID)
	require.NoError(t, err)
	require.Equal(t, "Football", kept.Name)
}

func TestDeleteCategoryWithItemsRejected(t *testing.T) {
	ts := newTestServer(t)
	ts.seedCatalog(t)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/categories/1/delete/", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.postForm("/categories/1/delete/", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteEmptyCategory(t *testing.T) {
	ts := newTestServer(t)
	category, err := ts.catalog.CreateCategory("Skating")
	require.NoError(t, err)

	rec := ts.postForm("/categories/1/delete/", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	_, err = ts.catalog.GetCategory(category.ID)
	require.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestCategoriesAPI(t *testing.T) {
	ts := newTestServer(t)
	for _, name := range []string{"Soccer", "Hockey"} {
		_, err := ts.catalog.CreateCategory(name)
		require.NoError(t, err)
	}

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/api/categories/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var categories []catalog.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	require.Len(t, categories, 2)
	require.Equal(t, "Soccer", categories[0].Name)
	require.Equal(t, "Hockey", categories[1].Name)
}

func TestItemsAPI(t *testing.T) {
	ts := newTestServer(t)
	category, err := ts.catalog.CreateCategory("Soccer")
	require.NoError(t, err)
	for _, name := range []string{"Ball", "Shinguards"} {
		_, err := ts.catalog.CreateItem(name, "", category.ID)
		require.NoError(t, err)
	}

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/api/items/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var items []catalog.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	require.Equal(t, int64(1), items[0].ID)
	require.Equal(t, int64(2), items[1].ID)
}
