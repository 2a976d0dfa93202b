package gateway

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pluserman/pluserman/internal/db/models"
)

// insertBatchSize is the number of membership rows per insert statement.
const insertBatchSize = 200

// InsertMemberships inserts rows in batches. Pairs that already exist are skipped.
func InsertMemberships(db *gorm.DB, rows []models.Membership) error {
	if db == nil {
		return ErrDBNil
	}

	if len(rows) == 0 {
		return nil
	}

	err := db.
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&rows, insertBatchSize).Error
	if err != nil {
		return errors.Wrapf(err, "failed to insert %d memberships", len(rows))
	}

	return nil
}

// DeleteMemberships removes every membership of a group and returns the number of rows removed.
func DeleteMemberships(db *gorm.DB, groupID uint64) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	result := db.Where("group_id = ?", groupID).Delete(&models.Membership{})
	if result.Error != nil {
		return 0, errors.Wrapf(result.Error, "failed to delete memberships of group %d", groupID)
	}

	return result.RowsAffected, nil
}

// GroupMemberIDs returns the userids of every member of a group ordered by userid.
func GroupMemberIDs(db *gorm.DB, groupID uint64) ([]string, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	ids := make([]string, 0)

	err := db.Model(&models.User{}).
		Joins("JOIN group_memberships ON group_memberships.user_id = users.id").
		Where("group_memberships.group_id = ?", groupID).
		Order("users.userid").
		Pluck("users.userid", &ids).Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list members of group %d", groupID)
	}

	return ids, nil
}
