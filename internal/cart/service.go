package cart

import (
	"context"

	"go.uber.org/zap"

	"ModaVista/internal/events"
	"ModaVista/internal/store"
)

type Service struct {
	Store   *store.Store
	Events  events.Publisher
	Log     *zap.Logger
	Metrics *Metrics
}

func NewService(st *store.Store, pub events.Publisher, log *zap.Logger) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{Store: st, Events: pub, Log: log}
}

// Add puts quantity units of a product in the user's cart. A user holds at
// most one row per product: adding an existing product adds to its quantity,
// up to MaxQuantity. Stock is not checked. created reports whether a new row
// was inserted.
func (s *Service) Add(ctx context.Context, userID, productID int64, quantity int) (item store.CartItem, created bool, err error) {
	defer func() { s.Metrics.observe("add", err) }()

	if quantity < 1 || quantity > MaxQuantity {
		return store.CartItem{}, false, ErrInvalidQuantity
	}

	err = s.Store.Update(func(tx *store.Tx) error {
		if _, ok := tx.Product(productID); !ok {
			return ErrProductNotFound
		}

		existing := tx.FindCartItems(func(it store.CartItem) bool {
			return it.UserID == userID && it.ProductID == productID
		})
		if len(existing) > 0 {
			item = existing[0]
			if item.Quantity > MaxQuantity-quantity {
				return ErrInvalidQuantity
			}
			item.Quantity += quantity
			tx.PutCartItem(item)
			return nil
		}

		item = tx.CreateCartItem(store.NewCartItem{UserID: userID, ProductID: productID, Quantity: quantity})
		created = true
		return nil
	})
	if err != nil {
		return store.CartItem{}, false, err
	}

	s.publish(ctx, events.CartItemAdded, map[string]any{
		"userId":    userID,
		"itemId":    item.ID,
		"productId": productID,
		"added":     quantity,
		"quantity":  item.Quantity,
	})
	return item, created, nil
}

// Items returns the user's cart in item id order.
func (s *Service) Items(ctx context.Context, userID int64) (Cart, error) {
	c := Cart{UserID: userID, Lines: []Line{}}

	err := s.Store.View(func(tx *store.ReadTx) error {
		for _, it := range tx.FindCartItems(func(it store.CartItem) bool { return it.UserID == userID }) {
			p, ok := tx.Product(it.ProductID)
			if !ok {
				s.Log.Error("cart integrity",
					zap.Int64("user_id", userID),
					zap.Int64("item_id", it.ID),
					zap.Int64("product_id", it.ProductID),
				)
				return ErrIntegrity
			}
			c.Lines = append(c.Lines, Line{CartItem: it, Product: p})
		}
		return nil
	})
	if err != nil {
		return Cart{}, err
	}
	return c, nil
}

// UpdateQuantity sets the quantity of one of the user's items. Items of
// other users are reported as not found.
func (s *Service) UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) (item store.CartItem, err error) {
	defer func() { s.Metrics.observe("update", err) }()

	if quantity < 1 || quantity > MaxQuantity {
		return store.CartItem{}, ErrInvalidQuantity
	}

	err = s.Store.Update(func(tx *store.Tx) error {
		it, ok := tx.CartItem(itemID)
		if !ok || it.UserID != userID {
			return ErrItemNotFound
		}
		it.Quantity = quantity
		tx.PutCartItem(it)
		item = it
		return nil
	})
	if err != nil {
		return store.CartItem{}, err
	}

	s.publish(ctx, events.CartItemUpdated, map[string]any{
		"userId":   userID,
		"itemId":   item.ID,
		"quantity": item.Quantity,
	})
	return item, nil
}

// Remove deletes one of the user's items and reports whether it existed.
func (s *Service) Remove(ctx context.Context, userID, itemID int64) bool {
	var removed bool
	_ = s.Store.Update(func(tx *store.Tx) error {
		it, ok := tx.CartItem(itemID)
		if !ok || it.UserID != userID {
			return nil
		}
		removed = tx.DeleteCartItem(itemID)
		return nil
	})

	if !removed {
		s.Metrics.observe("remove", ErrItemNotFound)
		return false
	}
	s.Metrics.observe("remove", nil)
	s.publish(ctx, events.CartItemRemoved, map[string]any{"userId": userID, "itemId": itemID})
	return true
}

// Clear empties the user's cart. Clearing an empty cart is not an error.
func (s *Service) Clear(ctx context.Context, userID int64) {
	var n int
	_ = s.Store.Update(func(tx *store.Tx) error {
		for _, it := range tx.FindCartItems(func(it store.CartItem) bool { return it.UserID == userID }) {
			if tx.DeleteCartItem(it.ID) {
				n++
			}
		}
		return nil
	})

	s.Metrics.observe("clear", nil)
	s.publish(ctx, events.CartCleared, map[string]any{"userId": userID, "removed": n})
}

func (s *Service) publish(ctx context.Context, key string, payload any) {
	if err := s.Events.Publish(ctx, key, payload); err != nil {
		s.Log.Warn("publish event failed", zap.String("key", key), zap.Error(err))
	}
}
