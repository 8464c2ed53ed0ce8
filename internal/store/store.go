package store

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// Store holds every entity for the lifetime of the process.
// One lock guards all collections so that read-modify-write sequences
// spanning several kinds (product creation bumps its category) stay atomic.
type Store struct {
	mu sync.RWMutex

	users      table[User]
	categories table[Category]
	products   table[Product]
	cartItems  table[CartItem]
}

func New() *Store {
	return &Store{
		users:      newTable[User](),
		categories: newTable[Category](),
		products:   newTable[Product](),
		cartItems:  newTable[CartItem](),
	}
}

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// View runs fn with the read lock held.
func (s *Store) View(fn func(tx *ReadTx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&ReadTx{s: s})
}

// Update runs fn with the write lock held. Changes made before fn returns
// an error are kept; callers check before they write.
func (s *Store) Update(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&Tx{ReadTx{s: s}})
}

type table[T any] struct {
	seq  int64
	rows map[int64]T
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[int64]T)}
}

func (t *table[T]) next() int64 {
	t.seq++
	return t.seq
}

func (t *table[T]) get(id int64) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

// find walks rows in id order. The order is a convenience for callers and tests.
func (t *table[T]) find(pred func(T) bool) []T {
	out := make([]T, 0, len(t.rows))
	for _, id := range slices.Sorted(maps.Keys(t.rows)) {
		v := t.rows[id]
		if pred == nil || pred(v) {
			out = append(out, v)
		}
	}
	return out
}

func (t *table[T]) delete(id int64) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

type ReadTx struct {
	s *Store
}

func (tx *ReadTx) User(id int64) (User, bool) { return tx.s.users.get(id) }

func (tx *ReadTx) FindUsers(pred func(User) bool) []User { return tx.s.users.find(pred) }

func (tx *ReadTx) Category(id int64) (Category, bool) { return tx.s.categories.get(id) }

func (tx *ReadTx) FindCategories(pred func(Category) bool) []Category {
	return tx.s.categories.find(pred)
}

func (tx *ReadTx) Product(id int64) (Product, bool) { return tx.s.products.get(id) }

func (tx *ReadTx) FindProducts(pred func(Product) bool) []Product {
	return tx.s.products.find(pred)
}

func (tx *ReadTx) CartItem(id int64) (CartItem, bool) { return tx.s.cartItems.get(id) }

func (tx *ReadTx) FindCartItems(pred func(CartItem) bool) []CartItem {
	return tx.s.cartItems.find(pred)
}

type Tx struct {
	ReadTx
}

func (tx *Tx) CreateUser(in NewUser) User {
	u := User{
		ID:        tx.s.users.next(),
		Username:  in.Username,
		Password:  in.Password,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Address:   in.Address,
		Phone:     in.Phone,
	}
	tx.s.users.rows[u.ID] = u
	return u
}

func (tx *Tx) CreateCategory(in NewCategory) Category {
	c := Category{
		ID:          tx.s.categories.next(),
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		ImageURL:    in.ImageURL,
	}
	tx.s.categories.rows[c.ID] = c
	return c
}

// CreateProduct also bumps ProductCount of the referenced category when it
// exists. The count is never recomputed.
func (tx *Tx) CreateProduct(in NewProduct) Product {
	p := Product{
		ID:          tx.s.products.next(),
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		Price:       in.Price,
		OldPrice:    in.OldPrice,
		ImageURL:    in.ImageURL,
		CategoryID:  in.CategoryID,
		Stock:       in.Stock,
		Rating:      in.Rating,
		ReviewCount: in.ReviewCount,
		IsNew:       in.IsNew,
		IsOnSale:    in.IsOnSale,
		IsLimited:   in.IsLimited,
	}
	tx.s.products.rows[p.ID] = p

	if c, ok := tx.s.categories.rows[p.CategoryID]; ok {
		c.ProductCount++
		tx.s.categories.rows[c.ID] = c
	}
	return p
}

func (tx *Tx) CreateCartItem(in NewCartItem) CartItem {
	it := CartItem{
		ID:        tx.s.cartItems.next(),
		UserID:    in.UserID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
	}
	tx.s.cartItems.rows[it.ID] = it
	return it
}

// PutCartItem overwrites an existing row. It reports false if the id is unknown.
func (tx *Tx) PutCartItem(it CartItem) bool {
	if _, ok := tx.s.cartItems.rows[it.ID]; !ok {
		return false
	}
	tx.s.cartItems.rows[it.ID] = it
	return true
}

func (tx *Tx) DeleteCartItem(id int64) bool { return tx.s.cartItems.delete(id) }

func (s *Store) CreateUser(in NewUser) User {
	var u User
	_ = s.Update(func(tx *Tx) error {
		u = tx.CreateUser(in)
		return nil
	})
	return u
}

func (s *Store) GetUser(id int64) (User, bool) {
	var (
		u  User
		ok bool
	)
	_ = s.View(func(tx *ReadTx) error {
		u, ok = tx.User(id)
		return nil
	})
	return u, ok
}

func (s *Store) FindUsers(pred func(User) bool) []User {
	var out []User
	_ = s.View(func(tx *ReadTx) error {
		out = tx.FindUsers(pred)
		return nil
	})
	return out
}

func (s *Store) CreateCategory(in NewCategory) Category {
	var c Category
	_ = s.Update(func(tx *Tx) error {
		c = tx.CreateCategory(in)
		return nil
	})
	return c
}

func (s *Store) GetCategory(id int64) (Category, bool) {
	var (
		c  Category
		ok bool
	)
	_ = s.View(func(tx *ReadTx) error {
		c, ok = tx.Category(id)
		return nil
	})
	return c, ok
}

func (s *Store) FindCategories(pred func(Category) bool) []Category {
	var out []Category
	_ = s.View(func(tx *ReadTx) error {
		out = tx.FindCategories(pred)
		return nil
	})
	return out
}

func (s *Store) CreateProduct(in NewProduct) Product {
	var p Product
	_ = s.Update(func(tx *Tx) error {
		p = tx.CreateProduct(in)
		return nil
	})
	return p
}

func (s *Store) GetProduct(id int64) (Product, bool) {
	var (
		p  Product
		ok bool
	)
	_ = s.View(func(tx *ReadTx) error {
		p, ok = tx.Product(id)
		return nil
	})
	return p, ok
}

func (s *Store) FindProducts(pred func(Product) bool) []Product {
	var out []Product
	_ = s.View(func(tx *ReadTx) error {
		out = tx.FindProducts(pred)
		return nil
	})
	return out
}
