package domain

import "strings"

// ShippingAddress is stored as an opaque JSON document next to the order.
type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

func (a ShippingAddress) Validate() error {
	switch {
	case strings.TrimSpace(a.FullName) == "":
		return NewValidationError("shippingAddress.fullName", "is required")
	case strings.TrimSpace(a.Street) == "":
		return NewValidationError("shippingAddress.street", "is required")
	case strings.TrimSpace(a.City) == "":
		return NewValidationError("shippingAddress.city", "is required")
	case strings.TrimSpace(a.Country) == "":
		return NewValidationError("shippingAddress.country", "is required")
	}
	return nil
}
