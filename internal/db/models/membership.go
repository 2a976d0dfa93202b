package models

// Membership is the many-to-many relation between users and groups.
// The composite primary key allows at most one row per (group, user) pair.
type Membership struct {
	// GroupID is the ID of the group in this membership.
	GroupID uint64 `gorm:"primaryKey;column:group_id"`
	// UserID is the row ID of the user in this membership.
	UserID uint64 `gorm:"primaryKey;column:user_id"`
	// Group is removed together with its memberships (CASCADE).
	Group Group `gorm:"foreignKey:GroupID;references:ID;constraint:OnDelete:CASCADE"`
	// User is removed together with its memberships (CASCADE).
	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the Membership model.
func (Membership) TableName() string {
	return "group_memberships"
}

// All returns every model the store migrates, parents first.
func All() []any {
	return []any{&User{}, &Group{}, &Membership{}}
}
