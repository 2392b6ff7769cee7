package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/memorygame-go/internal/api/response"
)

func newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Table commands",
	}

	cmd.AddCommand(newTableCreateCmd())
	cmd.AddCommand(newTableGetCmd())

	return cmd
}

func newTableCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a table and save its token",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.CreateTableResponse

			if err := client.Post("/api/v1/tables", nil, &result); err != nil {
				return err
			}

			if err := cfg.SaveToken(result.TableID); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newTableGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the table and its current round",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Table

			if err := client.Get("/api/v1/table", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
