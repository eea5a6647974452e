package shop

import (
	"strings"

	"github.com/roecybersecure/site-api/internal/money"
)

// Configuration is a sellable laptop variant. Catalog entries carry a stable
// ID; ad-hoc entries arriving on the wire may omit it and are treated as
// their own cart line.
type Configuration struct {
	ID         string  `json:"id,omitempty"`
	RAM        string  `json:"ram,omitempty"`
	Storage    string  `json:"storage,omitempty"`
	CPU        string  `json:"cpu,omitempty"`
	Generation string  `json:"generation,omitempty"`
	GPU        string  `json:"gpu,omitempty"`
	Price      float64 `json:"price"`
}

// UnitPrice returns the configuration price in minor units of the given
// currency.
func (c Configuration) UnitPrice(currency string) money.Money {
	return money.FromMajorUnits(c.Price, currency)
}

// Describe builds a human-readable product description from whichever hardware
// fields are present, e.g. "CPU: Core i9 14th Gen, GPU: RTX 4060, RAM: 16GB,
// Storage: 512GB".
func (c Configuration) Describe() string {
	var parts []string

	if c.CPU != "" {
		cpu := c.CPU
		if c.Generation != "" {
			cpu += " " + c.Generation + " Gen"
		}
		parts = append(parts, "CPU: "+cpu)
	}

	if c.GPU != "" {
		parts = append(parts, "GPU: "+c.GPU)
	}

	if c.RAM != "" {
		parts = append(parts, "RAM: "+c.RAM)
	}

	if c.Storage != "" {
		parts = append(parts, "Storage: "+c.Storage)
	}

	if len(parts) == 0 {
		return "Custom configuration"
	}

	return strings.Join(parts, ", ")
}

// Customer is the minimal identity collected at the online-payment step.
type Customer struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
}

// GivenName returns the first space-separated token of the customer name.
func (c Customer) GivenName() string {
	name, _, _ := strings.Cut(strings.TrimSpace(c.Name), " ")
	return name
}

// Surname returns everything after the first space of the customer name, or
// a placeholder when the name has a single token.
func (c Customer) Surname() string {
	_, rest, found := strings.Cut(strings.TrimSpace(c.Name), " ")
	if !found || rest == "" {
		return "Customer"
	}
	return rest
}
