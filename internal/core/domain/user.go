package domain

// User represents an application user. Each user owns an isolated partition
// of accounts and transactions.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	AuditFields
}
