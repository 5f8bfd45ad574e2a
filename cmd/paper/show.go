package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/zxrys/weak-accept/internal/reviews"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <paper-key>",
		Short: "Show paper details",
		Long: `Show a paper's full metadata, abstract and comments.

Examples:
  paper show 4711d67c242a5ecba2751e6b
  paper show 4711d67c242a5ecba2751e6b --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := a.setup()
			if err != nil {
				return err
			}
			return runShow(cmd.Context(), client, args[0], a.output())
		},
	}
}

func runShow(ctx context.Context, client *reviews.Client, paperKey string, out *output) error {
	paper, err := client.GetPaper(ctx, paperKey)
	if err != nil {
		return err
	}

	if out.jsonMode {
		return out.JSON(paper)
	}

	printPaperDetail(out.w, paper)
	return nil
}
