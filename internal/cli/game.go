package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/memorygame-go/internal/api/request"
	"github.com/mcoot/memorygame-go/internal/api/response"
)

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <name>",
		Short: "Enter a player name and deal the first round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Table

			body := request.StartSessionRequest{PlayerName: args[0]}
			if err := client.Post("/api/v1/table/session", body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newFlipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flip <card-id>",
		Short: "Flip a card face up",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cardID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("card id must be a number: %w", err)
			}

			var result response.FlipResponse

			if err := client.Post("/api/v1/table/flip", request.FlipRequest{CardID: &cardID}, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Deal a new round for the same player",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Table

			if err := client.Post("/api/v1/table/reset", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newNewGameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new-game",
		Short: "End the session and return to name entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Table

			if err := client.Delete("/api/v1/table/session", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRankingCmd() *cobra.Command {
	var show, hide bool

	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "Show the ranking, optionally opening or closing the ranking view",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.RankingResponse

			var err error
			switch {
			case show:
				err = client.Put("/api/v1/table/ranking", request.SetRankingRequest{Visible: true}, &result)
			case hide:
				err = client.Put("/api/v1/table/ranking", request.SetRankingRequest{Visible: false}, &result)
			default:
				err = client.Get("/api/v1/table/ranking", &result)
			}
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Open the ranking view")
	cmd.Flags().BoolVar(&hide, "hide", false, "Close the ranking view")
	cmd.MarkFlagsMutuallyExclusive("show", "hide")

	return cmd
}
