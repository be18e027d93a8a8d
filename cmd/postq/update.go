package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvannatta/postqueue/internal/client"
	"github.com/mvannatta/postqueue/internal/model"
)

var updateCmd = &cobra.Command{
	Use:     "update <id>",
	Short:   "Update a post's content or grouping",
	GroupID: "posts",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		req := &client.UpdatePostRequest{}

		// Content flags replace the whole content block, so fetch the
		// current post first and overlay only the flags that were set.
		if cmd.Flags().Changed("text") || cmd.Flags().Changed("title") ||
			cmd.Flags().Changed("subreddit") || cmd.Flags().Changed("visibility") ||
			cmd.Flags().Changed("media") {
			post, err := postsClient.GetPost(context.Background(), id)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			content := post.Content
			overlayContent(cmd, &content)
			req.Content = &content
		}

		if cmd.Flags().Changed("campaign") {
			v, _ := cmd.Flags().GetString("campaign")
			req.CampaignID = &v
		}
		if cmd.Flags().Changed("project") {
			v, _ := cmd.Flags().GetString("project")
			req.ProjectID = &v
		}

		post, err := postsClient.UpdatePost(context.Background(), id, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(post)
		} else {
			printPostTable(post)
		}
		return nil
	},
}

func overlayContent(cmd *cobra.Command, content *model.Content) {
	if cmd.Flags().Changed("text") {
		content.Text, _ = cmd.Flags().GetString("text")
	}
	if cmd.Flags().Changed("title") {
		content.Title, _ = cmd.Flags().GetString("title")
	}
	if cmd.Flags().Changed("subreddit") {
		content.Subreddit, _ = cmd.Flags().GetString("subreddit")
	}
	if cmd.Flags().Changed("visibility") {
		content.Visibility, _ = cmd.Flags().GetString("visibility")
	}
	if cmd.Flags().Changed("media") {
		content.MediaURLs, _ = cmd.Flags().GetStringSlice("media")
	}
}

func init() {
	updateCmd.Flags().String("text", "", "post text")
	updateCmd.Flags().String("title", "", "post title (reddit)")
	updateCmd.Flags().String("subreddit", "", "target subreddit (reddit)")
	updateCmd.Flags().String("visibility", "", "visibility (linkedin)")
	updateCmd.Flags().StringSlice("media", nil, "media URLs (replaces the list)")
	updateCmd.Flags().String("campaign", "", "campaign ID (empty string clears)")
	updateCmd.Flags().String("project", "", "project ID (empty string clears)")
}
