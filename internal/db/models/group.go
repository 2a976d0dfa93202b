package models

// Group represents a named set of users.
// The name is unique and immutable, membership is the only thing that changes.
type Group struct {
	// ID is the row identifier referenced by memberships.
	ID uint64 `gorm:"primaryKey"`
	// Name is the unique group name.
	Name string `gorm:"uniqueIndex;size:100;not null"`
}

// TableName specifies the database table name for the Group model.
func (Group) TableName() string {
	return "groups"
}
