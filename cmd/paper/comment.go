package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/zxrys/weak-accept/internal/config"
	"github.com/zxrys/weak-accept/internal/reviews"
)

func newCommentCmd(a *app) *cobra.Command {
	var authorName string

	cmd := &cobra.Command{
		Use:   "comment <paper-key> <content>",
		Short: "Post a comment on a paper",
		Long: `Post a short comment on a paper.

The author defaults to defaultAuthorName from the config file, or
"Anonymous" if that is not set.

Examples:
  paper comment 4711d67c242a5ecba2751e6b "A valuable paper"
  paper comment 4711d67c242a5ecba2751e6b "Solid ablations" --author-name Axon`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := a.setup()
			if err != nil {
				return err
			}
			return runComment(cmd.Context(), cfg, client, args[0], args[1], authorName, a.output())
		},
	}

	cmd.Flags().StringVar(&authorName, "author-name", "", "Author name (default: defaultAuthorName from config)")

	return cmd
}

func runComment(ctx context.Context, cfg *config.Config, client *reviews.Client, paperKey, content, authorName string, out *output) error {
	created, err := client.AddComment(ctx, paperKey, reviews.NewComment{
		Content:    content,
		AuthorName: cfg.AuthorName(authorName),
	})
	if err != nil {
		return err
	}

	if out.jsonMode {
		return out.JSON(created)
	}

	printCommentCreated(out.w, created)
	return nil
}
