package server

import (
	"encoding/json"
	"net/http"
)

// CategoriesAPIHandler returns every category as a JSON array ordered by
// identifier ascending (GET /api/categories/).
func (s *Server) CategoriesAPIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := s.catalog.ListCategories()
		if err != nil {
			s.catalogError(w, err)
			return
		}
		w.Header().Set("Content-Type", contentTypeJSON)
		_ = json.NewEncoder(w).Encode(categories)
	}
}

// ItemsAPIHandler returns every item as a JSON array ordered by identifier
// ascending (GET /api/items/).
func (s *Server) ItemsAPIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := s.catalog.ListItems()
		if err != nil {
			s.catalogError(w, err)
			return
		}
		w.Header().Set("Content-Type", contentTypeJSON)
		_ = json.NewEncoder(w).Encode(items)
	}
}
