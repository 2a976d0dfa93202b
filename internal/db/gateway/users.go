package gateway

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/pluserman/pluserman/internal/db/models"
)

const (
	useridQueryPattern = "userid = ?"
	useridInPattern    = "userid IN ?"

	// lookupChunkSize bounds the number of bind parameters per IN query.
	lookupChunkSize = 500
)

// FindUser retrieves a user by its userid.
func FindUser(db *gorm.DB, userid string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var user models.User

	result := db.Where(useridQueryPattern, userid).Limit(1).Find(&user)
	if result.Error != nil {
		return nil, errors.Wrapf(result.Error, "failed to find user %q", userid)
	}

	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return &user, nil
}

// InsertUser inserts a user row and fills its ID.
func InsertUser(db *gorm.DB, user *models.User) error {
	if db == nil {
		return ErrDBNil
	}

	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}

		return errors.Wrapf(err, "failed to insert user %q", user.UserID)
	}

	return nil
}

// DeleteUser deletes a user by userid and returns the number of rows removed.
func DeleteUser(db *gorm.DB, userid string) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	result := db.Where(useridQueryPattern, userid).Delete(&models.User{})
	if result.Error != nil {
		return 0, errors.Wrapf(result.Error, "failed to delete user %q", userid)
	}

	return result.RowsAffected, nil
}

// ListUserIDs returns every userid in insertion order.
func ListUserIDs(db *gorm.DB) ([]string, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	ids := make([]string, 0)

	if err := db.Model(&models.User{}).Order("id").Pluck("userid", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return ids, nil
}

// ResolveUsers maps the given userids to their row IDs. Unknown userids are absent from the result.
func ResolveUsers(db *gorm.DB, userids []string) (map[string]uint64, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	out := make(map[string]uint64, len(userids))

	for _, chunk := range chunks(userids, lookupChunkSize) {
		var users []models.User

		if err := db.Select("id", "userid").Where(useridInPattern, chunk).Find(&users).Error; err != nil {
			return nil, errors.Wrap(err, "failed to resolve users")
		}

		for _, u := range users {
			out[u.UserID] = u.ID
		}
	}

	return out, nil
}

// UserDetailRows returns one row per group membership of userid, or a single
// row with a NULL group_name when the user belongs to no group.
// The result is empty when the user does not exist.
func UserDetailRows(db *gorm.DB, userid string) ([]Row, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	stmt := "SELECT u.userid AS userid, u.first_name AS first_name, u.last_name AS last_name, g.name AS group_name" +
		" FROM users u" +
		" LEFT JOIN group_memberships m ON m.user_id = u.id" +
		" LEFT JOIN " + db.Statement.Quote(models.Group{}.TableName()) + " g ON g.id = m.group_id" +
		" WHERE u.userid = ?" +
		" ORDER BY g.name"

	return Query(db, stmt, userid)
}

// chunks splits s into slices of at most size elements.
func chunks[T any](s []T, size int) [][]T {
	out := make([][]T, 0, len(s)/size+1)

	for len(s) > size {
		out = append(out, s[:size])
		s = s[size:]
	}

	if len(s) > 0 {
		out = append(out, s)
	}

	return out
}
