package services

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"shinyshoes/internal/domain"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateProduct = errors.New("product id already exists")
)

const defaultImageURL = "https://images.unsplash.com/photo-1552346154-21d32810aba3?auto=format&fit=crop&w=800&q=80"

var defaultSizes = []float64{7, 8, 9, 10, 11}

// CatalogService is the process-wide product list. Sessions only read it; admins add and delete.
type CatalogService struct {
	mu       sync.RWMutex
	products []domain.Product
}

func NewCatalogService(seed []domain.Product) *CatalogService {
	s := &CatalogService{products: make([]domain.Product, 0, len(seed))}
	for _, p := range seed {
		s.products = append(s.products, p.Clone())
	}
	return s
}

// List returns a copy of the catalog in its stored order (newest additions first).
func (s *CatalogService) List() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.products))
	for i, p := range s.products {
		out[i] = p.Clone()
	}
	return out
}

func (s *CatalogService) Get(id string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return domain.Product{}, ErrProductNotFound
}

// Featured returns up to n new arrivals.
func (s *CatalogService) Featured(n int) []domain.Product {
	out := []domain.Product{}
	for _, p := range s.List() {
		if len(out) == n {
			break
		}
		if p.IsNew {
			out = append(out, p)
		}
	}
	return out
}

func (s *CatalogService) Filter(f Filter) []domain.Product {
	return FilterProducts(s.List(), f)
}

// Add prepends p. Ids must be unique.
func (s *CatalogService) Add(p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.products {
		if existing.ID == p.ID {
			return ErrDuplicateProduct
		}
	}
	s.products = append([]domain.Product{p.Clone()}, s.products...)
	return nil
}

// Delete removes every product with id and reports how many were removed.
// Carts and wishlists keep their own copies.
func (s *CatalogService) Delete(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.products[:0]
	removed := 0
	for _, p := range s.products {
		if p.ID == id {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	s.products = kept
	return removed
}

// ProductDraft is what the admin form submits.
type ProductDraft struct {
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Sizes       []float64 `json:"sizes"`
	Category    string    `json:"category"`
}

// NewProduct fills the fields the admin form never asks for: a time-based id,
// zero rating and reviews, and the new-arrival flag.
func NewProduct(d ProductDraft, now time.Time) domain.Product {
	sizes := d.Sizes
	if len(sizes) == 0 {
		sizes = defaultSizes
	}
	img := strings.TrimSpace(d.ImageURL)
	if img == "" {
		img = defaultImageURL
	}
	cat := domain.Category(d.Category)
	if !cat.Valid() {
		cat = domain.CategoryMen
	}
	return domain.Product{
		ID:          strconv.FormatInt(now.UnixMilli(), 10),
		Name:        strings.TrimSpace(d.Name),
		Brand:       strings.TrimSpace(d.Brand),
		Price:       d.Price,
		Description: d.Description,
		ImageURL:    img,
		Sizes:       append([]float64(nil), sizes...),
		Category:    cat,
		IsNew:       true,
		Rating:      0,
		Reviews:     0,
	}
}
