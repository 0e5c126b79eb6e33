package domain

type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// MockUser is the identity adopted by the login stub.
var MockUser = User{
	ID:      "u1",
	Name:    "Alex Shoeman",
	Email:   "alex@example.com",
	IsAdmin: true,
}
