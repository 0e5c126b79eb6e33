package domain

type OrderStatus string

const (
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
)

// ShippingForm is the checkout form as the client submits it.
type ShippingForm struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	ZipCode    string `json:"zipCode"`
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVC        string `json:"cvc"`
}

// NewOrder is the record handed to the order store on checkout.
type NewOrder struct {
	FirstName   string
	LastName    string
	Email       string
	Address     string
	City        string
	ZipCode     string
	Items       []CartLine
	TotalAmount float64
	Status      OrderStatus
}

// Order is a persisted order as read back from the store. JSON names follow the store's columns.
type Order struct {
	ID          int64       `json:"id"`
	CreatedAt   string      `json:"created_at"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	Email       string      `json:"email"`
	Address     string      `json:"address"`
	City        string      `json:"city"`
	ZipCode     string      `json:"zip_code"`
	Items       []CartLine  `json:"items"`
	TotalAmount *float64    `json:"total_amount"`
	Status      OrderStatus `json:"status"`
}

// Total treats a missing amount as zero.
func (o Order) Total() float64 {
	if o.TotalAmount == nil {
		return 0
	}
	return *o.TotalAmount
}
