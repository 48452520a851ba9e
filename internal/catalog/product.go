package catalog

import "time"

// Product is a catalog document. Prices are whole Rupiah, weight is
// grams per unit.
type Product struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Price     int64     `bson:"price" json:"price"`
	Image     string    `bson:"image" json:"image"`
	Slug      string    `bson:"slug" json:"slug"`
	Category  string    `bson:"category" json:"category"`
	Stock     int       `bson:"stock" json:"stock"`
	Weight    int64     `bson:"weight" json:"weight"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// CategoryAll is the sentinel meaning "no category filter".
const CategoryAll = "Semua"

// Categories is the fixed set the storefront filters on.
var Categories = []string{
	"Dapur",
	"Ruang Tamu",
	"Kamar Tidur",
	"Kamar Mandi",
	"Elektronik",
	"Dekorasi",
	"Lainnya",
}
