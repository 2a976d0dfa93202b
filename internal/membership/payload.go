package membership

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/pluserman/pluserman/internal/db/gateway"
)

// UserInput is a validated user record ready for UserCreate.
type UserInput struct {
	UserID    string   `json:"userid"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Groups    []string `json:"groups"`
}

// userPayload mirrors UserInput with pointers so absent keys can be told apart from empty values.
// The userid and group limits match nameRules.
type userPayload struct {
	UserID    *string   `json:"userid"     validate:"required,min=1,max=100"`
	FirstName *string   `json:"first_name" validate:"required,max=100"`
	LastName  *string   `json:"last_name"  validate:"required,max=100"`
	Groups    *[]string `json:"groups"     validate:"required,dive,min=1,max=100"`
}

// ValidateUserPayload decodes a user document and checks that every key is
// present with the right type and that every listed group exists.
func (s *Service) ValidateUserPayload(ctx context.Context, payload []byte) (*UserInput, error) {
	in, err := s.validateUserPayload(ctx, payload)

	return in, observe(opValidatePayload, err)
}

func (s *Service) validateUserPayload(ctx context.Context, payload []byte) (*UserInput, error) {
	var p userPayload

	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, errors.Wrap(ErrValidation, err.Error())
	}

	if err := s.validator.Struct(&p); err != nil {
		return nil, errors.Wrap(ErrValidation, err.Error())
	}

	in := &UserInput{
		UserID:    *p.UserID,
		FirstName: *p.FirstName,
		LastName:  *p.LastName,
		Groups:    *p.Groups,
	}

	groups := unique(in.Groups)
	if len(groups) == 0 {
		return in, nil
	}

	found, err := gateway.ResolveGroups(s.db.WithContext(ctx), groups)
	if err != nil {
		return nil, err
	}

	if absent := missing(groups, found); len(absent) > 0 {
		log.Warn().
			Str("userid", in.UserID).
			Strs("groups", absent).
			Msg("user payload names unknown groups")

		return nil, errors.Wrapf(ErrValidation, "unknown groups: %s", strings.Join(absent, ", "))
	}

	return in, nil
}
