package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacentio/companies/internal/config"
	"github.com/jacentio/companies/internal/logger"
	"github.com/jacentio/companies/store"
)

func newCreateTableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create-table",
		Short: "Create the DynamoDB table and location index",
		Long: `Create the DynamoDB table (hash key "id") with a global secondary index on
"location", then wait until the table is active. An existing table is left
untouched.`,
		RunE: createTableCommand,
	}
}

func createTableCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	client, err := cfg.AWS.DynamoDB(cmd.Context())
	if err != nil {
		return err
	}
	st := store.New(client, cfg.Table.Store())

	created, err := st.CreateTable(cmd.Context())
	if err != nil {
		return err
	}

	log.Info().
		Str("table", st.Config().TableName).
		Str("index", st.Config().LocationIndex).
		Bool("created", created).
		Msg("table ready")
	return nil
}
