// Package catalog holds the category/item records and their store. The
// rules are deliberately small: writes referencing a nonexistent category
// are rejected, and a category that still has items cannot be deleted.
package catalog

// Category groups items under a name.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Item is a single catalog entry belonging to a category.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  int64  `json:"category_id"`
}
