package models

// Usage is a per-user monthly transaction counter row.
type Usage struct {
	UserID string `db:"user_id"`
	Month  string `db:"month"`
	Count  int    `db:"count"`
}
