package daemon

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/pluserman/pluserman/internal/config"
	"github.com/pluserman/pluserman/internal/membership"
)

// seed creates the configured groups that do not exist yet.
func seed(cfg *config.Config, engine *membership.Service) error {
	ctx := context.Background()

	for _, name := range cfg.Seed.Groups {
		err := engine.GroupCreate(ctx, name)
		if errors.Is(err, membership.ErrGroupExists) {
			continue
		}

		if err != nil {
			return errors.Wrapf(err, "group %q", name)
		}

		log.Info().Str("group", name).Msg("seeded group")
	}

	return nil
}
