package shop

// Catalog is the static set of configurations offered on the shop page.
type Catalog struct {
	configurations []Configuration
	byID           map[string]Configuration
}

func NewCatalog(configurations []Configuration) *Catalog {
	byID := make(map[string]Configuration, len(configurations))
	for _, cfg := range configurations {
		byID[cfg.ID] = cfg
	}

	return &Catalog{
		configurations: configurations,
		byID:           byID,
	}
}

// DefaultCatalog returns the laptop configurations currently sold on the
// site. Prices are in USD major units.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Configuration{
		{
			ID:         "roe-i9-16-512",
			RAM:        "16GB",
			Storage:    "512GB SSD",
			CPU:        "Core i9",
			Generation: "14th",
			GPU:        "Nvidia GeForce RTX 4060",
			Price:      2850,
		},
		{
			ID:         "roe-i9-32-512",
			RAM:        "32GB",
			Storage:    "512GB SSD",
			CPU:        "Core i9",
			Generation: "14th",
			GPU:        "Nvidia GeForce RTX 4060",
			Price:      3000,
		},
		{
			ID:         "roe-i9-32-1024",
			RAM:        "32GB",
			Storage:    "1TB SSD",
			CPU:        "Core i9",
			Generation: "14th",
			GPU:        "Nvidia GeForce RTX 4060",
			Price:      3400,
		},
		{
			ID:         "roe-i9-64-2048",
			RAM:        "64GB",
			Storage:    "2TB SSD",
			CPU:        "Core i9",
			Generation: "14th",
			GPU:        "Nvidia GeForce RTX 4060",
			Price:      4000,
		},
	})
}

func (c *Catalog) Configurations() []Configuration {
	out := make([]Configuration, len(c.configurations))
	copy(out, c.configurations)
	return out
}

func (c *Catalog) Find(id string) (Configuration, bool) {
	cfg, ok := c.byID[id]
	return cfg, ok
}
