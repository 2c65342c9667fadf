package activity

// Entry is one row of a user's activity feed: orders placed, reviews
// written, wishlist changes. The backend assembles the feed; the gateway
// only pages through it.
type Entry struct {
	ID        string `json:"activityId"`
	UserID    string `json:"userId"`
	Kind      string `json:"kind"`
	Subject   string `json:"subject,omitempty"`
	ProductID string `json:"productId,omitempty"`
	CreatedAt string `json:"createdAt"`
}
