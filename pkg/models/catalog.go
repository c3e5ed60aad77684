package models

// Stylist is immutable reference data. Rank is the fixed tie-break priority
// for auto-assignment; lower means preferred.
type Stylist struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	Bio      string `json:"bio"`
	ImageRef string `json:"imageRef"`
	Rank     int    `json:"rank"`
}

// Outlet is immutable reference data.
type Outlet struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Contact  string `json:"contact"`
	ImageRef string `json:"imageRef"`
}

// Service is immutable reference data.
type Service struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	PriceInfo string `json:"priceInfo"`
}
