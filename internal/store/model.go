package store

import "github.com/shopspring/decimal"

func init() {
	// Prices go over the wire as numbers, like the storefront client expects.
	decimal.MarshalJSONWithoutQuotes = true
}

type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Password  []byte `json:"-"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	IsAdmin   bool   `json:"isAdmin"`
}

// NewUser carries the fields a caller may set. Password must already be hashed.
type NewUser struct {
	Username  string
	Password  []byte
	Email     string
	FirstName string
	LastName  string
	Address   string
	Phone     string
}

type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	ImageURL     string `json:"imageUrl"`
	ProductCount int    `json:"productCount"`
}

type NewCategory struct {
	Name        string
	Slug        string
	Description string
	ImageURL    string
}

type Product struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Slug        string              `json:"slug"`
	Description string              `json:"description"`
	Price       decimal.Decimal     `json:"price"`
	OldPrice    decimal.NullDecimal `json:"oldPrice"`
	ImageURL    string              `json:"imageUrl"`
	CategoryID  int64               `json:"categoryId"`
	Stock       int                 `json:"stock"`
	Rating      float64             `json:"rating"`
	ReviewCount int                 `json:"reviewCount"`
	IsNew       bool                `json:"isNew"`
	IsOnSale    bool                `json:"isOnSale"`
	IsLimited   bool                `json:"isLimited"`
}

const (
	BadgeNew     = "new"
	BadgeOnSale  = "sale"
	BadgeLimited = "limited"
)

// Badge returns the merchandising flag shown on the product card.
// New wins over OnSale, which wins over Limited.
func (p Product) Badge() string {
	switch {
	case p.IsNew:
		return BadgeNew
	case p.IsOnSale:
		return BadgeOnSale
	case p.IsLimited:
		return BadgeLimited
	default:
		return ""
	}
}

// NewProduct leaves Rating and ReviewCount at zero unless the seed sets them.
type NewProduct struct {
	Name        string
	Slug        string
	Description string
	Price       decimal.Decimal
	OldPrice    decimal.NullDecimal
	ImageURL    string
	CategoryID  int64
	Stock       int
	Rating      float64
	ReviewCount int
	IsNew       bool
	IsOnSale    bool
	IsLimited   bool
}

type CartItem struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"userId"`
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type NewCartItem struct {
	UserID    int64
	ProductID int64
	Quantity  int
}
