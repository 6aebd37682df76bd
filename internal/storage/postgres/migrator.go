package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/migrations/*.sql
var migrationsFS embed.FS

// MigrationStatus описывает текущее состояние схемы.
type MigrationStatus struct {
	Version uint
	Dirty   bool
	// Applied=false, если ни одна миграция ещё не применялась.
	Applied bool
}

// MigrateUp применяет steps up-миграций, все оставшиеся при steps <= 0.
func (s *Store) MigrateUp(ctx context.Context, steps int) error {
	return s.withMigrate(ctx, func(m *migrate.Migrate) error {
		var err error
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migrate up: %w", err)
		}
		return nil
	})
}

// MigrateDown откатывает steps миграций, все при steps <= 0.
func (s *Store) MigrateDown(ctx context.Context, steps int) error {
	return s.withMigrate(ctx, func(m *migrate.Migrate) error {
		var err error
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migrate down: %w", err)
		}
		return nil
	})
}

// MigrationStatus возвращает версию схемы.
func (s *Store) MigrationStatus(ctx context.Context) (MigrationStatus, error) {
	var status MigrationStatus
	err := s.withMigrate(ctx, func(m *migrate.Migrate) error {
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read migration version: %w", err)
		}
		status = MigrationStatus{Version: version, Dirty: dirty, Applied: true}
		return nil
	})
	return status, err
}

// withMigrate открывает отдельное подключение: migrate закрывает свой *sql.DB
// при Close, общий пул Store при этом не трогаем.
func (s *Store) withMigrate(ctx context.Context, fn func(m *migrate.Migrate) error) error {
	if s == nil || s.dsn == "" {
		return fmt.Errorf("postgres store is not initialized")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	db, err := sql.Open("pgx", s.dsn)
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}

	source, err := iofs.New(migrationsFS, "sql/migrations")
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer func() {
		_, _ = m.Close()
	}()

	// Позволяет прервать длинную цепочку миграций при отмене ctx.
	stop := context.AfterFunc(ctx, func() {
		select {
		case m.GracefulStop <- true:
		default:
		}
	})
	defer stop()

	return fn(m)
}
