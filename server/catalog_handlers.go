package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/catalogworks/go-catalog-server/catalog"
	"github.com/rs/zerolog/log"
)

// latestItemCount is how many recent items the homepage shows.
const latestItemCount = 3

// pathID parses the {id} path value. A non-numeric ID is treated the same
// as a missing record.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func catalogErrorStatus(err error) int {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrCategoryNotEmpty),
		errors.Is(err, catalog.ErrNameRequired),
		errors.Is(err, catalog.ErrInvalidCategory):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) catalogError(w http.ResponseWriter, err error) {
	status := catalogErrorStatus(err)
	if status == http.StatusInternalServerError {
		log.Err(err).Msg("catalog operation failed")
		http.Error(w, "Internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

// ensureCategory returns the category with the given name, creating it when
// it does not exist yet. Item forms name categories rather than pick IDs.
func (s *Server) ensureCategory(name string) (catalog.Category, error) {
	category, err := s.catalog.FindCategoryByName(name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		return catalog.Category{}, err
	}
	return s.catalog.CreateCategory(name)
}

// HomepageData contains data for rendering the homepage
type HomepageData struct {
	AppName     string
	Categories  []catalog.Category
	LatestItems []catalog.Item
}

// HomepageHandler renders all categories plus the latest items (GET /).
func (s *Server) HomepageHandler() http.HandlerFunc {
	tmpl := MustParseTemplate("homepage.html")

	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := s.catalog.ListCategories()
		if err != nil {
			s.catalogError(w, err)
			return
		}
		latest, err := s.catalog.LatestItems(latestItemCount)
		if err != nil {
			s.catalogError(w, err)
			return
		}

		data := HomepageData{
			AppName:     s.config.GetAppName(),
			Categories:  categories,
			LatestItems: latest,
		}
		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("failed to render homepage template")
		}
	}
}

// CategoryPageData contains data for rendering a single category's page
type CategoryPageData struct {
	Categories       []catalog.Category
	SelectedCategory catalog.Category
	CategoryItems    []catalog.Item
}

// CategoryPageHandler renders one category and its items (GET /categories/{id}/).
func (s *Server) CategoryPageHandler() http.HandlerFunc {
	tmpl := MustParseTemplate("category-items.html")

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		category, err := s.catalog.GetCategory(id)
		if err != nil {
			s.catalogError(w, err)
			return
		}
		categories, err := s.catalog.ListCategories()
		if err != nil {
			s.catalogError(w, err)
			return
		}
		items, err := s.catalog.ListItemsByCategory(id)
		if err != nil {
			s.catalogError(w, err)
			return
		}

		data := CategoryPageData{
			Categories:       categories,
			SelectedCategory: category,
			CategoryItems:    items,
		}
		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("failed to render category template")
		}
	}
}

// CategoryFormData contains data for category update/delete forms
type CategoryFormData struct {
	Categories       []catalog.Category
	SelectedCategory catalog.Category
}

// CategoryUpdateGetHandler renders the rename form (GET /categories/{id}/update/).
func (s *Server) CategoryUpdateGetHandler() http.HandlerFunc {
	tmpl := MustParseTemplate("update-category.html")

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		category, err := s.catalog.GetCategory(id)
		if err != nil {
			s.catalogError(w, err)
			return
		}
		categories, _ := s.catalog.ListCategories()

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, CategoryFormData{Categories: categories, SelectedCategory: category}); err != nil {
			log.Err(err).Msg("failed to render update-category template")
		}
	}
}

// CategoryUpdatePostHandler renames a category; an empty name keeps the
// existing one (POST /categories/{id}/update/).
func (s *Server) CategoryUpdatePostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		category, err := s.catalog.GetCategory(id)
		if err != nil {
			s.catalogError(w, err)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		name := r.FormValue("category")
		if name == "" {
			name = category.Name
		}
		if _, err := s.catalog.UpdateCategory(id, name); err != nil {
			s.catalogError(w, err)
			return
		}
		http.Redirect(w, r, categoryPath(id), http.StatusSeeOther)
	}
}

// CategoryDeleteGetHandler renders the delete confirmation
// (GET /categories/{id}/delete/).
func (s *Server) CategoryDeleteGetHandler() http.HandlerFunc {
	tmpl := MustParseTemplate("delete-category.html")

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		category, err := s.catalog.GetCategory(id)
		if err != nil {
			s.catalogError(w, err)
			return
		}
		items, err := s.catalog.ListItemsByCategory(id)
		if err != nil {
			s.catalogError(w, err)
			return
		}
		// Mirrors the POST: a category with items cannot be deleted.
		if len(items) > 0 {
			http.Error(w, catalog.ErrCategoryNotEmpty.Error(), http.StatusBadRequest)
			return
		}
		categories, _ := s.catalog.ListCategories()

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, CategoryFormData{Categories: categories, SelectedCategory: category}); err != nil {
			log.Err(err).Msg("failed to render delete-category template")
		}
	}
}

// CategoryDeletePostHandler deletes an empty category
// (POST /categories/{id}/delete/).
func (s *Server) CategoryDeletePostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		if err := s.catalog.DeleteCategory(id); err != nil {
			s.catalogError(w, err)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// ItemFormData contains data for item forms and the item page
type ItemFormData struct {
	Categories   []catalog.Category
	SelectedItem catalog.Item
	Category     catalog.Category
}

// ItemPageHandler renders one item (GET /items/{id}/).
func (s *Server) ItemPageHandler() http.HandlerFunc {
	tmpl := MustParseTemplate("show-item.html")

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		item, err := s.catalog.GetItem(id)
		if err != nil {
			s.catalogError(w, err)
			return
		}
		category, err := s.catalog.GetCategory(item.CategoryID)
		if err != nil {
			s.catalogError(w, err)
			return
		}
		categories, _ := s.catalog.ListCategories()

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, ItemFormData{Categories: categories, SelectedItem: item, Category: category}); err != nil {
			log.Err(err).Msg("failed to render show-item template")
		}
	}
}

// ItemNewGetHandler renders the create form (GET /items/new/).
func (s *Server) ItemNewGetHandler() http.HandlerFunc {
	tmpl := MustParseTemplate("new-item.html")

	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := s.catalog.ListCategories()
		if err != nil {
			s.catalogError(w, err)
			return
		}
		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, ItemFormData{Categories: categories}); err != nil {
			log.Err(err).Msg("failed to render new-item template")
		}
	}
}

// ItemNewPostHandler creates an item; naming an unknown category creates the
// category alongside it (POST /items/new/).
func (s *Server) ItemNewPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		name := r.FormValue("item_name")
		categoryName := r.FormValue("category")
		if name == "" || categoryName == "" {
			http.Error(w, "Item name and category are required", http.StatusBadRequest)
			return
		}

		category, err := s.ensureCategory(categoryName)
		if err != nil {
			s.catalogError(w, err)
			return
		}
		item, err := s.catalog.CreateItem(name, r.FormValue("description"), category.ID)
		if err != nil {
			s.catalogError(w, err)
			return
		}
		http.Redirect(w, r, itemPath(item.ID), http.StatusSeeOther)
	}
}

// ItemUpdateGetHandler renders the edit form (GET /items/{id}/update/).
func (s *Server) ItemUpdateGetHandler() http.HandlerFunc {
	tmpl := MustParseTemplate("update-item.html")

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		item, err := s.catalog.GetItem(id)
		if err != nil {
			s.catalogError(w, err)
			return
		}
		categories, _ := s.catalog.ListCategories()

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, ItemFormData{Categories: categories, SelectedItem: item}); err != nil {
			log.Err(err).Msg("failed to render update-item template")
		}
	}
}

// ItemUpdatePostHandler edits an item; empty fields keep their existing
// values, and naming an unknown category creates it (POST /items/{id}/update/).
func (s *Server) ItemUpdatePostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		item, err := s.catalog.GetItem(id)
		if err != nil {
			s.catalogError(w, err)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		if name := r.FormValue("item_name"); name != "" {
			item.Name = name
		}
		item.Description = r.FormValue("description")
		if categoryName := r.FormValue("category"); categoryName != "" {
			category, err := s.ensureCategory(categoryName)
			if err != nil {
				s.catalogError(w, err)
				return
			}
			item.CategoryID = category.ID
		}

		if _, err := s.catalog.UpdateItem(item); err != nil {
			s.catalogError(w, err)
			return
		}
		http.Redirect(w, r, itemPath(item.ID), http.StatusSeeOther)
	}
}

// ItemDeleteGetHandler renders the delete confirmation (GET /items/{id}/delete/).
func (s *Server) ItemDeleteGetHandler() http.HandlerFunc {
	tmpl := MustParseTemplate("delete-item.html")

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		item, err := s.catalog.GetItem(id)
		if err != nil {
			s.catalogError(w, err)
			return
		}
		categories, _ := s.catalog.ListCategories()

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, ItemFormData{Categories: categories, SelectedItem: item}); err != nil {
			log.Err(err).Msg("failed to render delete-item template")
		}
	}
}

// ItemDeletePostHandler deletes an item (POST /items/{id}/delete/).
func (s *Server) ItemDeletePostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		if err := s.catalog.DeleteItem(id); err != nil {
			s.catalogError(w, err)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func categoryPath(id int64) string {
	return "/categories/" + strconv.FormatInt(id, 10) + "/"
}

func itemPath(id int64) string {
	return "/items/" + strconv.FormatInt(id, 10) + "/"
}
