package membership

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pluserman/pluserman/internal/db/gateway"
	"github.com/pluserman/pluserman/internal/db/models"
)

// findGroup maps the gateway not found error to ErrGroupNotFound.
func findGroup(db *gorm.DB, name string) (*models.Group, error) {
	group, err := gateway.FindGroup(db, name)
	if errors.Is(err, gateway.ErrNotFound) {
		return nil, ErrGroupNotFound
	}

	return group, err
}

// GroupExists reports whether the group exists.
func (s *Service) GroupExists(ctx context.Context, name string) (bool, error) {
	_, err := findGroup(s.db.WithContext(ctx), name)
	if errors.Is(err, ErrGroupNotFound) {
		return false, observe(opGroupExists, nil)
	}

	return err == nil, observe(opGroupExists, err)
}

// GroupList returns every group name.
func (s *Service) GroupList(ctx context.Context) ([]string, error) {
	names, err := gateway.ListGroupNames(s.db.WithContext(ctx))

	return names, observe(opGroupList, err)
}

// GroupCreate creates an empty group.
func (s *Service) GroupCreate(ctx context.Context, name string) error {
	return observe(opGroupCreate, s.groupCreate(ctx, name))
}

func (s *Service) groupCreate(ctx context.Context, name string) error {
	if err := s.checkName("group name", name); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := findGroup(tx, name)
		if err == nil {
			return ErrGroupExists
		}

		if !errors.Is(err, ErrGroupNotFound) {
			return err
		}

		if err = gateway.InsertGroup(tx, &models.Group{Name: name}); errors.Is(err, gateway.ErrDuplicate) {
			return ErrGroupExists
		}

		return err
	})
	if err != nil {
		log.Warn().Err(err).Str("group", name).Msg("group create rejected")

		return err
	}

	log.Debug().Str("group", name).Msg("group created")

	return nil
}

// GroupDelete removes the group. Its memberships are removed by the store.
func (s *Service) GroupDelete(ctx context.Context, name string) error {
	n, err := gateway.DeleteGroup(s.db.WithContext(ctx), name)
	if err != nil {
		return observe(opGroupDelete, err)
	}

	if n == 0 {
		return observe(opGroupDelete, ErrGroupNotFound)
	}

	log.Debug().Str("group", name).Msg("group deleted")

	return observe(opGroupDelete, nil)
}

// GroupMembers returns the userids of the group members.
// A group without members yields an empty slice, a missing group ErrGroupNotFound.
func (s *Service) GroupMembers(ctx context.Context, name string) ([]string, error) {
	db := s.db.WithContext(ctx)

	group, err := findGroup(db, name)
	if err != nil {
		return nil, observe(opGroupMembers, err)
	}

	ids, err := gateway.GroupMemberIDs(db, group.ID)

	return ids, observe(opGroupMembers, err)
}

// GroupAddMember adds one user to the group. Adding an existing member succeeds without change.
func (s *Service) GroupAddMember(ctx context.Context, name, userid string) error {
	return observe(opGroupAddMember, s.groupAddMember(ctx, name, userid))
}

func (s *Service) groupAddMember(ctx context.Context, name, userid string) error {
	db := s.db.WithContext(ctx)

	group, err := findGroup(db, name)
	if err != nil {
		return err
	}

	user, err := gateway.FindUser(db, userid)
	if errors.Is(err, gateway.ErrNotFound) {
		return errors.Wrapf(ErrUserNotFound, "userid %q", userid)
	}

	if err != nil {
		return err
	}

	if err = gateway.InsertMemberships(db, []models.Membership{{GroupID: group.ID, UserID: user.ID}}); err != nil {
		return err
	}

	log.Debug().Str("group", name).Str("userid", userid).Msg("group member added")

	return nil
}

// GroupSetMembers replaces the member set of the group with targets.
// Every target is checked before anything is written, and the replacement
// itself runs in one transaction.
func (s *Service) GroupSetMembers(ctx context.Context, name string, targets []string) error {
	return observe(opGroupSetMembers, s.groupSetMembers(ctx, name, targets))
}

func (s *Service) groupSetMembers(ctx context.Context, name string, targets []string) error {
	db := s.db.WithContext(ctx)

	if _, err := findGroup(db, name); err != nil {
		return err
	}

	targets = unique(targets)

	if err := checkUsers(db, targets); err != nil {
		log.Warn().Err(err).Str("group", name).Msg("group member replace rejected")

		return err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		group, err := findGroup(tx, name)
		if err != nil {
			return err
		}

		if _, err = gateway.DeleteMemberships(tx, group.ID); err != nil {
			return err
		}

		if len(targets) == 0 {
			return nil
		}

		userIDs, err := gateway.ResolveUsers(tx, targets)
		if err != nil {
			return err
		}

		// a target may have been deleted since the check above
		if absent := missing(targets, userIDs); len(absent) > 0 {
			return errors.Wrapf(ErrUserNotFound, "unknown users: %s", strings.Join(absent, ", "))
		}

		rows := make([]models.Membership, 0, len(targets))
		for _, t := range targets {
			rows = append(rows, models.Membership{GroupID: group.ID, UserID: userIDs[t]})
		}

		return gateway.InsertMemberships(tx, rows)
	})
	if err != nil {
		log.Error().Err(err).Str("group", name).Msg("group member replace failed")

		return err
	}

	log.Debug().Str("group", name).Strs("members", targets).Msg("group members replaced")

	return nil
}

// checkUsers returns ErrUserNotFound naming every userid that does not exist.
func checkUsers(db *gorm.DB, userids []string) error {
	if len(userids) == 0 {
		return nil
	}

	found, err := gateway.ResolveUsers(db, userids)
	if err != nil {
		return err
	}

	if absent := missing(userids, found); len(absent) > 0 {
		return errors.Wrapf(ErrUserNotFound, "unknown users: %s", strings.Join(absent, ", "))
	}

	return nil
}
