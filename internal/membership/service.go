// Package membership keeps users, groups and their memberships consistent.
// Every multi step write runs in a single transaction.
package membership

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/pluserman/pluserman/internal/db/gateway"
)

const (
	opUserExists      = "user_exists"
	opUserCreate      = "user_create"
	opUserDelete      = "user_delete"
	opUserDetails     = "user_details"
	opUserList        = "user_list"
	opValidatePayload = "validate_payload"
	opGroupExists     = "group_exists"
	opGroupList       = "group_list"
	opGroupCreate     = "group_create"
	opGroupDelete     = "group_delete"
	opGroupMembers    = "group_members"
	opGroupAddMember  = "group_add_member"
	opGroupSetMembers = "group_set_members"
)

// nameRules limits userids and group names to what a user payload may name.
const nameRules = "required,max=100"

// Service is the membership engine.
type Service struct {
	db        *gorm.DB
	validator *validator.Validate
}

// New creates the engine on top of an open pool.
func New(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, gateway.ErrDBNil
	}

	return &Service{
		db:        db,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

// checkName returns ErrValidation when name is empty or longer than a payload accepts.
func (s *Service) checkName(kind, name string) error {
	if name == "" {
		return errors.Wrapf(ErrValidation, "%s can not be empty", kind)
	}

	if err := s.validator.Var(name, nameRules); err != nil {
		return errors.Wrapf(ErrValidation, "%s %q: %s", kind, name, err.Error())
	}

	return nil
}

// unique returns s without repeated entries, keeping the first occurrence order.
func unique(s []string) []string {
	seen := make(map[string]struct{}, len(s))
	out := make([]string, 0, len(s))

	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		out = append(out, v)
	}

	return out
}

// missing returns the entries of want absent from have, in want order.
func missing[V any](want []string, have map[string]V) []string {
	var out []string

	for _, w := range want {
		if _, ok := have[w]; !ok {
			out = append(out, w)
		}
	}

	return out
}
