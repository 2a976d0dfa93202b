// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/pluserman/pluserman/internal/config"
)

// sqliteForeignKeys is appended to every sqlite DSN so each pooled connection enforces foreign keys.
const sqliteForeignKeys = "_pragma=foreign_keys(1)"

// Create builds the Data Source Name for the configured engine.
func Create(dbCfg *config.Config) string {
	switch dbCfg.DB.GormEngine {
	case config.EngineMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			dbCfg.DB.User,
			dbCfg.DB.Password,
			dbCfg.DB.Host,
			dbCfg.DB.Port,
			dbCfg.DB.Name,
			dbCfg.DB.Extras,
		)
	case config.EnginePostgres:
		out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
			dbCfg.DB.Host,
			dbCfg.DB.Port,
			dbCfg.DB.User,
			dbCfg.DB.Password,
			dbCfg.DB.Name,
		)
		if dbCfg.DB.Extras != "" {
			out += " " + dbCfg.DB.Extras
		}

		return out
	default:
		params := []string{sqliteForeignKeys}
		if dbCfg.DB.Extras != "" {
			params = append(params, dbCfg.DB.Extras)
		}

		return dbCfg.DB.Path + "?" + strings.Join(params, "&")
	}
}
