package models

// User represents a user account.
// UserID is supplied by the caller and never changes after creation.
type User struct {
	// ID is the row identifier referenced by memberships.
	ID uint64 `gorm:"primaryKey"`
	// UserID is the external, unique user identifier.
	UserID string `gorm:"column:userid;uniqueIndex;size:100;not null"`
	// FirstName is the user's first or given name.
	FirstName string `gorm:"column:first_name;size:100"`
	// LastName is the user's last or family name.
	LastName string `gorm:"column:last_name;size:100"`
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}
