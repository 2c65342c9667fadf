package rating

// Rating is one user's review of a product. A user holds at most one
// rating per product; the backend enforces it and the store's
// ExistingForProduct lookup lets the UI switch between add and edit.
type Rating struct {
	ID        string   `json:"ratingId"`
	UserID    string   `json:"userId"`
	UserName  string   `json:"userName,omitempty"`
	ProductID string   `json:"productId"`
	Value     int      `json:"value"`
	Comment   string   `json:"comment,omitempty"`
	ImageURLs []string `json:"imageUrls,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

// Average is the aggregate the product page shows next to the stars.
type Average struct {
	ProductID string  `json:"productId"`
	Average   float64 `json:"average"`
	Count     int     `json:"count"`
}

// ValidValue reports whether v is within the 1 to 5 star range. Checked
// before any request is dispatched so a bad slider value never leaves the
// gateway.
func ValidValue(v int) bool {
	return v >= 1 && v <= 5
}
