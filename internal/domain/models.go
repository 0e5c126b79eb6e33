package domain

type Category string

const (
	CategoryMen    Category = "men"
	CategoryWomen  Category = "women"
	CategoryUnisex Category = "unisex"
	// CategoryAll is the filter sentinel; no product carries it.
	CategoryAll Category = "all"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryMen, CategoryWomen, CategoryUnisex:
		return true
	}
	return false
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Sizes       []float64 `json:"sizes"`
	Category    Category  `json:"category"`
	IsNew       bool      `json:"isNew,omitempty"`
	Rating      float64   `json:"rating"`
	Reviews     int       `json:"reviews"`
}

// HasSize reports whether size is one of the product's available sizes.
func (p Product) HasSize(size float64) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// Clone copies the product including its size list.
func (p Product) Clone() Product {
	p.Sizes = append([]float64(nil), p.Sizes...)
	return p
}

// CartLine is a denormalized product snapshot plus the purchasing choice.
type CartLine struct {
	Product
	SelectedSize float64 `json:"selectedSize"`
	Quantity     int     `json:"quantity"`
}

func (l CartLine) Matches(productID string, size float64) bool {
	return l.ID == productID && l.SelectedSize == size
}

type SortOption string

const (
	SortNewest    SortOption = "NEWEST"
	SortPriceLow  SortOption = "PRICE_LOW"
	SortPriceHigh SortOption = "PRICE_HIGH"
	SortPopular   SortOption = "POPULAR"
)
