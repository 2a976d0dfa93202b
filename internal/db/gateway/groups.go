package gateway

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/pluserman/pluserman/internal/db/models"
)

const (
	nameQueryPattern = "name = ?"
	nameInPattern    = "name IN ?"
)

// FindGroup retrieves a group by its name.
func FindGroup(db *gorm.DB, name string) (*models.Group, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var group models.Group

	result := db.Where(nameQueryPattern, name).Limit(1).Find(&group)
	if result.Error != nil {
		return nil, errors.Wrapf(result.Error, "failed to find group %q", name)
	}

	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return &group, nil
}

// InsertGroup inserts a group row and fills its ID.
func InsertGroup(db *gorm.DB, group *models.Group) error {
	if db == nil {
		return ErrDBNil
	}

	if err := db.Create(group).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}

		return errors.Wrapf(err, "failed to insert group %q", group.Name)
	}

	return nil
}

// DeleteGroup deletes a group by name and returns the number of rows removed.
func DeleteGroup(db *gorm.DB, name string) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	result := db.Where(nameQueryPattern, name).Delete(&models.Group{})
	if result.Error != nil {
		return 0, errors.Wrapf(result.Error, "failed to delete group %q", name)
	}

	return result.RowsAffected, nil
}

// ListGroupNames returns every group name in insertion order.
func ListGroupNames(db *gorm.DB) ([]string, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	names := make([]string, 0)

	if err := db.Model(&models.Group{}).Order("id").Pluck("name", &names).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list groups")
	}

	return names, nil
}

// ResolveGroups maps the given names to their row IDs. Unknown names are absent from the result.
func ResolveGroups(db *gorm.DB, names []string) (map[string]uint64, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	out := make(map[string]uint64, len(names))

	for _, chunk := range chunks(names, lookupChunkSize) {
		var groups []models.Group

		if err := db.Select("id", "name").Where(nameInPattern, chunk).Find(&groups).Error; err != nil {
			return nil, errors.Wrap(err, "failed to resolve groups")
		}

		for _, g := range groups {
			out[g.Name] = g.ID
		}
	}

	return out, nil
}
