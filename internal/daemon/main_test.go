package daemon

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluserman/pluserman/internal/config"
	"github.com/pluserman/pluserman/internal/db/gateway"
)

func testConfig(t *testing.T, dbPath string) *config.Config {
	t.Helper()

	return &config.Config{
		DevMode: true,
		DB:      config.DB{GormEngine: config.EngineSQLite, Path: dbPath},
		Webserver: config.Webserver{
			Port:          5000,
			URL:           "http://localhost:5000",
			CheckAliveURI: "/checkalive",
		},
		Seed: config.Seed{Groups: []string{"wheel", "users", "restricted", "wheel"}},
	}
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrConfigNil)

	dbPath := filepath.Join(t.TempDir(), "daemon.db")

	d, err := New(testConfig(t, dbPath))
	require.NoError(t, err)
	require.NotNil(t, d.webService)

	groups, err := d.engine.GroupList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"wheel", "users", "restricted"}, groups)

	require.NoError(t, gateway.Close(d.db))

	// seeding an existing database is a no-op
	d, err = New(testConfig(t, dbPath))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = gateway.Close(d.db)
	})

	groups, err = d.engine.GroupList(context.Background())
	require.NoError(t, err)
	assert.Len(t, groups, 3)
}

func TestNewUnsupportedEngine(t *testing.T) {
	cfg := testConfig(t, "")
	cfg.DB.GormEngine = "oracle"

	_, err := New(cfg)
	require.ErrorIs(t, err, config.ErrUnsupportedEngine)
}
