package db

import (
	"fmt"
	stdlog "log"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"matchmaker/internal/model"
)

// Open returns a connected GORM DB instance for the given driver.
// Supported drivers are mysql, postgres and sqlite.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newLogger(log.Logger),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}

	if driver == "sqlite" && strings.Contains(dsn, ":memory:") {
		// every pooled connection would otherwise get its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// newLogger routes GORM's slow query and error lines into zerolog.
// A lookup that finds nothing is a normal outcome here, not a warning.
func newLogger(zl zerolog.Logger) logger.Interface {
	w := zl.With().Str("component", "gorm").Logger()
	return logger.New(stdlog.New(w, "", 0), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// Migrate creates or updates the users, projects, tags and project_tags tables.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&model.Project{}, "Tags", &model.ProjectTag{}); err != nil {
		return fmt.Errorf("setup join table: %w", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Project{},
		&model.ProjectTag{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// Tag names are case sensitive; the default MySQL collation is not.
	if db.Dialector.Name() == "mysql" {
		for _, stmt := range []string{
			"ALTER TABLE tags MODIFY name VARCHAR(64) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL",
			"ALTER TABLE project_tags MODIFY tag_name VARCHAR(64) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL",
		} {
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("tag collation: %w", err)
			}
		}
	}
	return nil
}
