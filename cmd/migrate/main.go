package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"

	"culinary-be/internal/config"
	"culinary-be/internal/db"
	"culinary-be/internal/item"
	"culinary-be/internal/logger"
	"culinary-be/internal/order"
	"culinary-be/internal/seed"
	"culinary-be/internal/stats"
	"culinary-be/internal/supplier"
	"culinary-be/internal/workflow"

	"github.com/spf13/cobra"
)

type openFunc func() (*sql.DB, error)

func openFromEnv() (*sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.AppEnv)
	return db.NewDatabase(cfg)
}

func main() {
	defer logger.Sync()
	if err := newRootCmd(openFromEnv).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(open openFunc) *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the inventory database schema and fixtures",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var dir string
	root.PersistentFlags().StringVar(&dir, "dir", "", "Read migrations from this directory instead of the embedded set")

	migrations := func() fs.FS {
		if dir != "" {
			return os.DirFS(dir)
		}
		return db.Migrations()
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDB(open, func(database *sql.DB) error {
					if err := db.Migrate(database, "up", migrations()); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "All new migrations applied successfully.")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDB(open, func(database *sql.DB) error {
					if err := db.Migrate(database, "down", migrations()); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "Rollback successful.")
					return nil
				})
			},
		},
		newSeedCmd(open),
	)
	return root
}

func newSeedCmd(open openFunc) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load suppliers, items and orders from a YAML fixtures file",
		RunE: func(cmd *cobra.Command, args []string) error {
			fh, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open fixtures: %w", err)
			}
			defer fh.Close()

			fixtures, err := seed.Load(fh)
			if err != nil {
				return err
			}

			return withDB(open, func(database *sql.DB) error {
				sum, err := seed.Apply(context.Background(), stores(database), fixtures)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d suppliers, %d items, %d orders.\n",
					sum.Suppliers, sum.Items, sum.Orders)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "fixtures/sample.yaml", "Fixtures file")
	return cmd
}

func stores(database *sql.DB) workflow.Stores {
	return workflow.Stores{
		Items:     item.NewService(item.NewRepository(database)),
		Suppliers: supplier.NewService(supplier.NewRepository(database)),
		Orders:    order.NewService(order.NewRepository(database)),
		Stats:     stats.NewService(stats.NewRepository(database)),
	}
}

func withDB(open openFunc, fn func(*sql.DB) error) error {
	database, err := open()
	if err != nil {
		return err
	}
	defer database.Close()
	return fn(database)
}
