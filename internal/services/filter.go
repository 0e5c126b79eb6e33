package services

import (
	"sort"
	"strconv"

	"shinyshoes/internal/domain"
)

const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 500
)

// Filter is the shop view's input tuple.
type Filter struct {
	Category domain.Category
	MinPrice float64
	MaxPrice float64
	Sort     domain.SortOption
}

// DefaultFilter matches the shop view on first load.
func DefaultFilter() Filter {
	return Filter{Category: domain.CategoryAll, MinPrice: DefaultMinPrice, MaxPrice: DefaultMaxPrice, Sort: domain.SortNewest}
}

// FilterProducts derives the displayed list. It never modifies products.
// Equal sort keys keep their catalog order.
func FilterProducts(products []domain.Product, f Filter) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if f.Category != "" && f.Category != domain.CategoryAll && p.Category != f.Category {
			continue
		}
		if p.Price < f.MinPrice || p.Price > f.MaxPrice {
			continue
		}
		out = append(out, p)
	}

	var less func(a, b domain.Product) bool
	switch f.Sort {
	case domain.SortPriceLow:
		less = func(a, b domain.Product) bool { return a.Price < b.Price }
	case domain.SortPriceHigh:
		less = func(a, b domain.Product) bool { return a.Price > b.Price }
	case domain.SortPopular:
		less = func(a, b domain.Product) bool { return a.Reviews > b.Reviews }
	default:
		// Ids double as creation order.
		less = func(a, b domain.Product) bool { return idRank(a.ID) > idRank(b.ID) }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func idRank(id string) int64 {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
