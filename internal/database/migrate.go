package database

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"class-companion/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

// Direction selects which way migrations run.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// RunMigrations applies the embedded migrations for the connection's driver.
// SQLite goes through golang-migrate and supports both directions. Oracle
// runs the .up.sql scripts in order and only supports Up.
func RunMigrations(db *sqlx.DB, driver string, dir Direction) error {
	switch driver {
	case DriverSQLite:
		return runGolangMigrate(db, dir)
	case DriverOracle:
		if dir != Up {
			return fmt.Errorf("%s migrations only support %q", driver, Up)
		}
		return runScripts(db, path.Join("migrations", DriverOracle))
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}
}

func runGolangMigrate(db *sqlx.DB, dir Direction) error {
	src, err := iofs.New(migrationsFS, path.Join("migrations", DriverSQLite))
	if err != nil {
		return fmt.Errorf("could not open migration source: %w", err)
	}
	target, err := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, DriverSQLite, target)
	if err != nil {
		return fmt.Errorf("could not create migrator: %w", err)
	}

	switch dir {
	case Up:
		err = m.Up()
	case Down:
		err = m.Down()
	default:
		return fmt.Errorf("unknown migration direction %q", dir)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s failed: %w", dir, err)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("could not read migration version: %w", verr)
	}
	logger.Get().Info("Migrations completed",
		zap.String("direction", string(dir)),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty))
	return nil
}

func runScripts(db *sqlx.DB, dir string) error {
	files, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("could not read migrations directory: %w", err)
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		if strings.HasSuffix(f.Name(), ".up.sql") {
			names = append(names, f.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := fs.ReadFile(migrationsFS, path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", name, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			// ORA-00955 and ORA-01408: the object already exists.
			if msg := err.Error(); strings.Contains(msg, "ORA-00955") || strings.Contains(msg, "ORA-01408") {
				logger.Get().Info("Skipping applied migration", zap.String("file", name))
				continue
			}
			return fmt.Errorf("could not execute migration %s: %w", name, err)
		}
		logger.Get().Info("Executed migration", zap.String("file", name))
	}
	return nil
}
