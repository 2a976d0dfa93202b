package membership

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pluserman/pluserman/internal/db/gateway"
	"github.com/pluserman/pluserman/internal/db/models"
)

// UserDetail is a user together with the names of the groups it belongs to.
type UserDetail struct {
	UserID    string   `json:"userid"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Groups    []string `json:"groups"`
}

// UserExists reports whether userid exists.
func (s *Service) UserExists(ctx context.Context, userid string) (bool, error) {
	_, err := gateway.FindUser(s.db.WithContext(ctx), userid)
	if errors.Is(err, gateway.ErrNotFound) {
		return false, observe(opUserExists, nil)
	}

	return err == nil, observe(opUserExists, err)
}

// UserList returns every userid.
func (s *Service) UserList(ctx context.Context) ([]string, error) {
	ids, err := gateway.ListUserIDs(s.db.WithContext(ctx))

	return ids, observe(opUserList, err)
}

// UserCreate inserts the user and its memberships in one transaction.
// A missing group aborts the whole create with an error matching both
// ErrValidation and ErrGroupNotFound.
func (s *Service) UserCreate(ctx context.Context, in UserInput) error {
	return observe(opUserCreate, s.userCreate(ctx, in))
}

func (s *Service) userCreate(ctx context.Context, in UserInput) error {
	if err := s.checkName("userid", in.UserID); err != nil {
		return err
	}

	groups := unique(in.Groups)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := gateway.FindUser(tx, in.UserID)
		if err == nil {
			return ErrUserExists
		}

		if !errors.Is(err, gateway.ErrNotFound) {
			return err
		}

		groupIDs, err := gateway.ResolveGroups(tx, groups)
		if err != nil {
			return err
		}

		if absent := missing(groups, groupIDs); len(absent) > 0 {
			return fmt.Errorf("%w: %w: %s", ErrValidation, ErrGroupNotFound, strings.Join(absent, ", "))
		}

		user := &models.User{UserID: in.UserID, FirstName: in.FirstName, LastName: in.LastName}
		if err = gateway.InsertUser(tx, user); err != nil {
			if errors.Is(err, gateway.ErrDuplicate) {
				return ErrUserExists
			}

			return err
		}

		rows := make([]models.Membership, 0, len(groups))
		for _, g := range groups {
			rows = append(rows, models.Membership{GroupID: groupIDs[g], UserID: user.ID})
		}

		return gateway.InsertMemberships(tx, rows)
	})
	if err != nil {
		log.Warn().Err(err).Str("userid", in.UserID).Msg("user create rejected")

		return err
	}

	log.Debug().Str("userid", in.UserID).Strs("groups", groups).Msg("user created")

	return nil
}

// UserDelete removes the user. Its memberships are removed by the store.
func (s *Service) UserDelete(ctx context.Context, userid string) error {
	n, err := gateway.DeleteUser(s.db.WithContext(ctx), userid)
	if err != nil {
		return observe(opUserDelete, err)
	}

	if n == 0 {
		return observe(opUserDelete, ErrUserNotFound)
	}

	log.Debug().Str("userid", userid).Msg("user deleted")

	return observe(opUserDelete, nil)
}

// UserDetails returns the user record and its group names. Groups is never nil.
func (s *Service) UserDetails(ctx context.Context, userid string) (*UserDetail, error) {
	rows, err := gateway.UserDetailRows(s.db.WithContext(ctx), userid)
	if err != nil {
		return nil, observe(opUserDetails, err)
	}

	if len(rows) == 0 {
		return nil, observe(opUserDetails, ErrUserNotFound)
	}

	detail := &UserDetail{
		UserID:    rows[0].String("userid"),
		FirstName: rows[0].String("first_name"),
		LastName:  rows[0].String("last_name"),
		Groups:    make([]string, 0, len(rows)),
	}

	for _, row := range rows {
		if name := row.String("group_name"); name != "" {
			detail.Groups = append(detail.Groups, name)
		}
	}

	return detail, observe(opUserDetails, nil)
}
