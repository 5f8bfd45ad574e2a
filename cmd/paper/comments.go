package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/zxrys/weak-accept/internal/reviews"
)

func newCommentsCmd(a *app) *cobra.Command {
	var params reviews.PageParams
	var offset int

	cmd := &cobra.Command{
		Use:   "comments <paper-key>",
		Short: "List comments on a paper",
		Long: `List the public comments posted on a paper.

Examples:
  paper comments 4711d67c242a5ecba2751e6b
  paper comments 4711d67c242a5ecba2751e6b --limit 10 --offset 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("offset") {
				params.Offset = &offset
			}

			_, client, err := a.setup()
			if err != nil {
				return err
			}
			return runComments(cmd.Context(), client, args[0], params, a.output())
		},
	}

	cmd.Flags().IntVar(&params.Limit, "limit", reviews.DefaultLimit, "Maximum comments to return (1-100)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of comments to skip")

	return cmd
}

func runComments(ctx context.Context, client *reviews.Client, paperKey string, params reviews.PageParams, out *output) error {
	comments, err := client.ListComments(ctx, paperKey, params)
	if err != nil {
		return err
	}

	if out.jsonMode {
		if comments == nil {
			comments = []reviews.Comment{}
		}
		return out.JSON(comments)
	}

	printComments(out.w, comments)
	return nil
}
