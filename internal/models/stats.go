package models

// CategoryCount is a per-category product count from the stats endpoint.
type CategoryCount struct {
	Category string `json:"category" yaml:"category"`
	Count    int    `json:"count" yaml:"count"`
}

// Stats is the server-side summary returned by GET /stats.
type Stats struct {
	ProductsByCategory []CategoryCount `json:"products_by_category" yaml:"products_by_category"`
	TotalStock         int             `json:"total_stock" yaml:"total_stock"`
	OrdersByStatus     map[string]int  `json:"orders_by_status" yaml:"orders_by_status"`
}
