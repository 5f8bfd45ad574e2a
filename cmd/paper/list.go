package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/zxrys/weak-accept/internal/reviews"
)

func newListCmd(a *app) *cobra.Command {
	var params reviews.ListParams
	var offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List papers",
		Long: `List papers, optionally filtered by announcement date, interest tag or
categories.

Examples:
  paper list
  paper list --date 2026-02-04 --categories cs.AI,cs.LG --limit 5
  paper list --interest chosen --offset 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if params.Date != "" {
				if err := reviews.ValidateDate(params.Date); err != nil {
					return usageError("%v", err)
				}
			}
			if cmd.Flags().Changed("offset") {
				params.Offset = &offset
			}

			_, client, err := a.setup()
			if err != nil {
				return err
			}
			return runList(cmd.Context(), client, params, a.output())
		},
	}

	cmd.Flags().StringVar(&params.Date, "date", "", "Filter by announcement date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&params.Interest, "interest", "", "Filter by interest tag (e.g. chosen)")
	cmd.Flags().StringVar(&params.Categories, "categories", "", "Filter by categories (e.g. cs.AI,cs.LG)")
	cmd.Flags().IntVar(&params.Limit, "limit", reviews.DefaultLimit, "Maximum papers to return (1-100)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of papers to skip")

	return cmd
}

func runList(ctx context.Context, client *reviews.Client, params reviews.ListParams, out *output) error {
	papers, err := client.ListPapers(ctx, params)
	if err != nil {
		return err
	}

	if out.jsonMode {
		if papers == nil {
			papers = []reviews.Paper{}
		}
		return out.JSON(papers)
	}

	printPaperList(out.w, papers)
	return nil
}
