package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shinyshoes/internal/domain"
)

func TestShippingFormRequiresEveryField(t *testing.T) {
	assert.Equal(t,
		[]string{"firstName", "lastName", "email", "address", "city", "zipCode", "cardNumber", "expiry", "cvc"},
		ShippingForm(domain.ShippingForm{}))

	full := domain.ShippingForm{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
		Address: "1 Loop St", City: "London", ZipCode: "N1",
		CardNumber: "not checked", Expiry: "12/99", CVC: "x",
	}
	assert.Empty(t, ShippingForm(full))

	full.Email = "nope"
	full.City = "   "
	assert.Equal(t, []string{"email", "city"}, ShippingForm(full))
}

func TestCategory(t *testing.T) {
	c, ok := Category("")
	assert.True(t, ok)
	assert.Equal(t, domain.CategoryAll, c)

	c, ok = Category("Women")
	assert.True(t, ok)
	assert.Equal(t, domain.CategoryWomen, c)

	_, ok = Category("kids")
	assert.False(t, ok)
}

func TestSortAndSize(t *testing.T) {
	assert.Equal(t, domain.SortPriceLow, Sort("price_low"))
	assert.Equal(t, domain.SortNewest, Sort("bogus"))

	s, ok := Size("9.5")
	assert.True(t, ok)
	assert.Equal(t, 9.5, s)
	_, ok = Size("-1")
	assert.False(t, ok)
}

func TestPrice(t *testing.T) {
	p, ok := Price("", 500)
	assert.True(t, ok)
	assert.Equal(t, 500.0, p)

	_, ok = Price("-3", 0)
	assert.False(t, ok)
}
