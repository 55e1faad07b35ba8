// Command companies runs the company directory API.
package main

import (
	"fmt"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "companies",
		Short: "Company directory API backed by DynamoDB",
		Long: `Company directory API backed by DynamoDB.

Configuration is read from the environment (TABLE_NAME, AWS_REGION,
HTTP_HOST, HTTP_PORT, ...) and optionally from a .env file.

Examples:
  companies                 # same as "companies serve"
  companies serve --addr 0.0.0.0:8080
  companies create-table    # provision the table and location index`,
		SilenceUsage: true,
		RunE:         serveCommand,
	}

	// Serve flags on the root command so that bare "companies --addr" works.
	cobraflags.RegisterMap(root, serveFlags)

	root.AddCommand(newServeCommand())
	root.AddCommand(newCreateTableCommand())
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
