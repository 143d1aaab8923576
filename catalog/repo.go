package catalog

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrNameRequired     = errors.New("name is required")
	ErrCategoryNotEmpty = errors.New("category still has items")
	ErrInvalidCategory  = errors.New("category does not exist")
)

// Repo is the catalog store. Listings are ordered by identifier ascending;
// LatestItems is the one descending view, for the homepage.
type Repo interface {
	CreateCategory(name string) (Category, error)
	GetCategory(id int64) (Category, error)
	FindCategoryByName(name string) (Category, error)
	ListCategories() ([]Category, error)
	UpdateCategory(id int64, name string) (Category, error)
	DeleteCategory(id int64) error

	CreateItem(name, description string, categoryID int64) (Item, error)
	GetItem(id int64) (Item, error)
	ListItems() ([]Item, error)
	ListItemsByCategory(categoryID int64) ([]Item, error)
	LatestItems(limit int) ([]Item, error)
	UpdateItem(item Item) (Item, error)
	DeleteItem(id int64) error
}
