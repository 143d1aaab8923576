package catalog

import (
	"sort"
	"sync"
)

// InMemoryRepo is an in-memory implementation of Repo.
type InMemoryRepo struct {
	mu         sync.RWMutex
	categories map[int64]Category
	items      map[int64]Item
	nextCatID  int64
	nextItemID int64
}

// NewInMemoryRepo creates a new in-memory catalog repository.
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		categories: make(map[int64]Category),
		items:      make(map[int64]Item),
		nextCatID:  1,
		nextItemID: 1,
	}
}

// CreateCategory adds a category.
func (r *InMemoryRepo) CreateCategory(name string) (Category, error) {
	if name == "" {
		return Category{}, ErrNameRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	category := Category{ID: r.nextCatID, Name: name}
	r.categories[category.ID] = category
	r.nextCatID++
	return category, nil
}

// GetCategory retrieves a category by ID.
func (r *InMemoryRepo) GetCategory(id int64) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[id]
	if !ok {
		return Category{}, ErrNotFound
	}
	return category, nil
}

// FindCategoryByName retrieves a category by its exact name.
func (r *InMemoryRepo) FindCategoryByName(name string) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, category := range r.categories {
		if category.Name == name {
			return category, nil
		}
	}
	return Category{}, ErrNotFound
}

// ListCategories returns all categories ordered by ID ascending.
func (r *InMemoryRepo) ListCategories() ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]Category, 0, len(r.categories))
	for _, category := range r.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

// UpdateCategory renames a category.
func (r *InMemoryRepo) UpdateCategory(id int64, name string) (Category, error) {
	if name == "" {
		return Category{}, ErrNameRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	category, ok := r.categories[id]
	if !ok {
		return Category{}, ErrNotFound
	}
	category.Name = name
	r.categories[id] = category
	return category, nil
}

// DeleteCategory removes a category. Fails while items still reference it.
func (r *InMemoryRepo) DeleteCategory(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return ErrNotFound
	}
	for _, item := range r.items {
		if item.CategoryID == id {
			return ErrCategoryNotEmpty
		}
	}
	delete(r.categories, id)
	return nil
}

// CreateItem adds an item to an existing category.
func (r *InMemoryRepo) CreateItem(name, description string, categoryID int64) (Item, error) {
	if name == "" {
		return Item{}, ErrNameRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[categoryID]; !ok {
		return Item{}, ErrInvalidCategory
	}
	item := Item{ID: r.nextItemID, Name: name, Description: description, CategoryID: categoryID}
	r.items[item.ID] = item
	r.nextItemID++
	return item, nil
}

// GetItem retrieves an item by ID.
func (r *InMemoryRepo) GetItem(id int64) (Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return Item{}, ErrNotFound
	}
	return item, nil
}

// ListItems returns all items ordered by ID ascending.
func (r *InMemoryRepo) ListItems() ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]Item, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// ListItemsByCategory returns a category's items ordered by ID ascending.
func (r *InMemoryRepo) ListItemsByCategory(categoryID int64) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]Item, 0)
	for _, item := range r.items {
		if item.CategoryID == categoryID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// LatestItems returns up to limit items, newest first.
func (r *InMemoryRepo) LatestItems(limit int) ([]Item, error) {
	items, err := r.ListItems()
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	if limit >= 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// UpdateItem replaces an item's fields. The item and its category must exist.
func (r *InMemoryRepo) UpdateItem(item Item) (Item, error) {
	if item.Name == "" {
		return Item{}, ErrNameRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return Item{}, ErrNotFound
	}
	if _, ok := r.categories[item.CategoryID]; !ok {
		return Item{}, ErrInvalidCategory
	}
	r.items[item.ID] = item
	return item, nil
}

// DeleteItem removes an item.
func (r *InMemoryRepo) DeleteItem(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}
