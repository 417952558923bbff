package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"

	"trivia-party/internal/catalog"
	"trivia-party/internal/config"
	"trivia-party/internal/domain"
	"trivia-party/internal/infra/file"
	pgstore "trivia-party/internal/infra/postgres"
	pgmigrations "trivia-party/internal/infra/postgres/migrations"
)

// NewMigrateCmd applies database migrations.
func NewMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()
			return runMigrationsWithConfig(cmd.Context(), cfg, log)
		},
	}
}

// NewSeedCmd upserts a catalog into Postgres: the YAML file from --file or
// catalog.path, else the built-in subjects.
func NewSeedCmd(configPath *string) *cobra.Command {
	var catalogFile string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load subjects into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			path := catalogFile
			if path == "" {
				path = cfg.Catalog.Path
			}
			subjects := catalog.Builtin()
			if path != "" {
				subjects, err = file.NewSubjectLoader(path).LoadSubjects(cmd.Context())
				if err != nil {
					return err
				}
			}
			return runSeedWithConfig(cmd.Context(), cfg, subjects, log)
		},
	}
	cmd.Flags().StringVar(&catalogFile, "file", "", "YAML catalog to seed instead of the built-in subjects")
	return cmd
}

func openDB(cfg config.Config) (*bun.DB, error) {
	if cfg.Postgres.URL == "" {
		return nil, fmt.Errorf("postgres url not configured")
	}
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
	return bun.NewDB(sqldb, pgdialect.New()), nil
}

func runMigrationsWithConfig(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)

	if err := migrator.Init(ctx); err != nil {
		return err
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return err
	}
	if group.IsZero() {
		log.Info("no new migrations")
		return nil
	}
	log.Info("migrations applied", zap.String("group", group.String()))
	return nil
}

func runSeedWithConfig(ctx context.Context, cfg config.Config, subjects []domain.Subject, log *zap.Logger) error {
	if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := pgstore.SeedSubjects(ctx, db, subjects); err != nil {
		return err
	}
	log.Info("subjects seeded", zap.Int("count", len(subjects)))
	return nil
}
