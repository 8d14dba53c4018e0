package models

import "time"

// APIClient is a machine credential. It is hard-deleted, so it has no
// restore lifecycle.
type APIClient struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Secret    string    `gorm:"not null" json:"-"`
	Scopes    string    `json:"scopes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuditIgnore replaces the default audit ignore-set: only the secret is
// withheld, timestamps are recorded.
func (APIClient) AuditIgnore() []string {
	return []string{"secret"}
}
