package store

import "github.com/shopspring/decimal"

const (
	DemoUsername = "demo"
	DemoPassword = "password123"
)

const unsplash = "https://images.unsplash.com/"

var demoCategories = []NewCategory{
	{Name: "Erkek", Slug: "erkek", Description: "Erkek giyim ürünleri", ImageURL: unsplash + "photo-1490481651871-ab68de25d43d?auto=format&fit=crop&w=800&h=600"},
	{Name: "Kadın", Slug: "kadin", Description: "Kadın giyim ürünleri", ImageURL: unsplash + "photo-1554568218-0f1715e72254?auto=format&fit=crop&w=800&h=600"},
	{Name: "Elektronik", Slug: "elektronik", Description: "Elektronik ürünler", ImageURL: unsplash + "photo-1546054454-aa26e2b734c7?auto=format&fit=crop&w=800&h=600"},
	{Name: "Ev & Yaşam", Slug: "ev-yasam", Description: "Ev ve yaşam ürünleri", ImageURL: unsplash + "photo-1583847268964-b28dc8f51f92?auto=format&fit=crop&w=800&h=600"},
}

func price(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func oldPrice(v int64) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.NewFromInt(v)) }

// Ratings are fixed so the featured list is the same on every start.
var demoProducts = []NewProduct{
	{Name: "Premium Spor Ayakkabı", Slug: "premium-spor-ayakkabi", Description: "Hafif ve konforlu tasarım", Price: price(899), OldPrice: oldPrice(1299), ImageURL: unsplash + "photo-1600185365926-3a2ce3cdb9eb?auto=format&fit=crop&w=600&h=600", CategoryID: 1, Stock: 50, Rating: 4.7, ReviewCount: 86, IsNew: true, IsOnSale: true},
	{Name: "Kablosuz Kulaklık", Slug: "kablosuz-kulaklik", Description: "Aktif gürültü engelleme", Price: price(1249), OldPrice: oldPrice(1799), ImageURL: unsplash + "photo-1505740420928-5e560c06d30e?auto=format&fit=crop&w=600&h=600", CategoryID: 3, Stock: 30, Rating: 4.9, ReviewCount: 64, IsOnSale: true},
	{Name: "Kadın Deri Kol Saati", Slug: "kadin-deri-kol-saati", Description: "Şık ve minimalist tasarım", Price: price(650), ImageURL: unsplash + "photo-1526045431048-f857369baa09?auto=format&fit=crop&w=600&h=600", CategoryID: 2, Stock: 15, Rating: 3.8, ReviewCount: 21},
	{Name: "Akıllı Tablet 10 inç", Slug: "akilli-tablet-10-inc", Description: "Yüksek performans, ince tasarım", Price: price(3199), OldPrice: oldPrice(3599), ImageURL: unsplash + "photo-1610465299996-30f240ac2b1c?auto=format&fit=crop&w=600&h=600", CategoryID: 3, Stock: 10, Rating: 4.3, ReviewCount: 47, IsOnSale: true, IsLimited: true},
	{Name: "Tasarım El Çantası", Slug: "tasarim-el-cantasi", Description: "Gerçek deri, premium kalite", Price: price(1450), ImageURL: unsplash + "photo-1594223274512-ad4803739b7c?auto=format&fit=crop&w=600&h=600", CategoryID: 2, Stock: 20, Rating: 4.5, ReviewCount: 33, IsNew: true},
	{Name: "Ultra X Akıllı Telefon", Slug: "ultra-x-akilli-telefon", Description: "256GB, Gece Mavisi", Price: price(12999), ImageURL: unsplash + "photo-1580910051074-3eb694886505?auto=format&fit=crop&w=600&h=600", CategoryID: 3, Stock: 8, Rating: 4.8, ReviewCount: 92, IsNew: true},
	{Name: "Modern Sandalye", Slug: "modern-sandalye", Description: "Ergonomik tasarım, sağlam yapı", Price: price(750), ImageURL: unsplash + "photo-1598300042247-d088f8ab3a91?auto=format&fit=crop&w=600&h=600", CategoryID: 4, Stock: 25, Rating: 3.6, ReviewCount: 12, IsNew: true},
	{Name: "Erkek Klasik Kol Saati", Slug: "erkek-klasik-kol-saati", Description: "Su geçirmez, safir cam", Price: price(1850), ImageURL: unsplash + "photo-1524805444758-089113d48a6d?auto=format&fit=crop&w=600&h=600", CategoryID: 1, Stock: 18, Rating: 4.5, ReviewCount: 58, IsNew: true},
}

// Seed loads the demo catalog and the demo account into an empty store.
// demoPassword is the already hashed form of DemoPassword.
func Seed(s *Store, demoPassword []byte) {
	for _, c := range demoCategories {
		s.CreateCategory(c)
	}
	for _, p := range demoProducts {
		s.CreateProduct(p)
	}
	s.CreateUser(NewUser{
		Username:  DemoUsername,
		Password:  demoPassword,
		Email:     "demo@example.com",
		FirstName: "Demo",
		LastName:  "User",
		Address:   "123 Main St, Istanbul",
		Phone:     "+90 555 123 4567",
	})
}
