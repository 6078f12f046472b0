package domain

// Usage is a per-user monthly transaction-count quota row.
// Month uses the "2006-01" format.
type Usage struct {
	UserID string `json:"userID"`
	Month  string `json:"month"`
	Count  int    `json:"count"`
}
