package services

import "shinyshoes/internal/domain"

// DefaultProducts is the catalog every process starts with.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{
			ID: "1", Name: "The Classic Oxford", Brand: "ShinyShoes", Price: 199.99,
			Description: "A timeless black leather shoe with a brilliant shine, perfect for formal occasions.",
			ImageURL:    "https://images.unsplash.com/photo-1614252235316-8c857d38b5f4?q=80&w=2670&auto=format&fit=crop",
			Sizes:       []float64{7, 8, 9, 10, 11, 12}, Category: domain.CategoryMen, Rating: 4.8, Reviews: 89,
		},
		{
			ID: "2", Name: "The Modern Loafer", Brand: "ShinyShoes", Price: 149.50,
			Description: "A stylish blue suede loafer with a silver buckle, blending comfort with elegance.",
			ImageURL:    "https://images.unsplash.com/photo-1533867617858-e7b97e060509?q=80&w=2669&auto=format&fit=crop",
			Sizes:       []float64{7, 8, 9, 10, 11}, Category: domain.CategoryMen, IsNew: true, Rating: 4.6, Reviews: 45,
		},
		{
			ID: "3", Name: "The Running Trainer", Brand: "ShinyShoes", Price: 129.99,
			Description: "A sleek white and silver athletic shoe designed for performance and style on the track.",
			ImageURL:    "https://images.unsplash.com/photo-1595950653106-6c9ebd614d3a?q=80&w=2574&auto=format&fit=crop",
			Sizes:       []float64{6, 7, 8, 9, 10, 11, 12}, Category: domain.CategoryUnisex, IsNew: true, Rating: 4.9, Reviews: 210,
		},
		{
			ID: "4", Name: "The Elegant Heel", Brand: "ShinyShoes", Price: 249.00,
			Description: "A glossy red stiletto heel, embodying sophistication and glamour.",
			ImageURL:    "https://images.unsplash.com/photo-1543163521-1bf539c55dd2?q=80&w=2680&auto=format&fit=crop",
			Sizes:       []float64{5, 6, 7, 8, 9}, Category: domain.CategoryWomen, Rating: 4.7, Reviews: 132,
		},
		{
			ID: "5", Name: "The Urban Boot", Brand: "ShinyShoes", Price: 180.00,
			Description: "A rugged brown leather ankle boot with a chunky sole, ideal for a stylish city look.",
			ImageURL:    "https://images.unsplash.com/photo-1520639888713-7851133b1ed0?q=80&w=2574&auto=format&fit=crop",
			Sizes:       []float64{7, 8, 9, 10, 11, 12}, Category: domain.CategoryUnisex, Rating: 4.5, Reviews: 78,
		},
		{
			ID: "6", Name: "The Casual Slip-on", Brand: "ShinyShoes", Price: 65.00,
			Description: "A relaxed grey canvas shoe, perfect for a day at the beach or a casual outing.",
			ImageURL:    "https://images.unsplash.com/photo-1562183241-b937e95585b6?q=80&w=2665&auto=format&fit=crop",
			Sizes:       []float64{5, 6, 7, 8, 9, 10, 11}, Category: domain.CategoryUnisex, Rating: 4.3, Reviews: 560,
		},
		{
			ID: "7", Name: "The Statement Sneaker", Brand: "ShinyShoes", Price: 220.00,
			Description: "A vibrant, iridescent high-top sneaker that is sure to turn heads.",
			ImageURL:    "https://images.unsplash.com/photo-1552346154-21d32810aba3?q=80&w=2670&auto=format&fit=crop",
			Sizes:       []float64{8, 9, 10, 11, 12, 13}, Category: domain.CategoryMen, IsNew: true, Rating: 5.0, Reviews: 42,
		},
		{
			ID: "9", Name: "The Performance Sandal", Brand: "ShinyShoes", Price: 85.00,
			Description: "A durable and comfortable sandal designed for outdoor adventures.",
			ImageURL:    "https://images.unsplash.com/photo-1560769629-975ec94e6a86?q=80&w=2564&auto=format&fit=crop",
			Sizes:       []float64{6, 7, 8, 9, 10, 11}, Category: domain.CategoryUnisex, Rating: 4.4, Reviews: 156,
		},
		{
			ID: "10", Name: "The 'ShinyShoe' Signature", Brand: "ShinyShoes", Price: 350.00,
			Description: "A pair of our formal and elegant styles, presented side-by-side to represent the breadth and quality of the ShinyShoe collection.",
			ImageURL:    "https://images.unsplash.com/photo-1549298916-b41d501d3772?q=80&w=2512&auto=format&fit=crop",
			Sizes:       []float64{7, 8, 9, 10, 11}, Category: domain.CategoryUnisex, IsNew: true, Rating: 4.9, Reviews: 12,
		},
	}
}
