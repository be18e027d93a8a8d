package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvannatta/postqueue/internal/client"
	"github.com/mvannatta/postqueue/internal/model"
)

// parseWhen accepts RFC 3339 or a local "2006-01-02 15:04" timestamp.
func parseWhen(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: use RFC 3339 or \"2006-01-02 15:04\"", s)
	}
	return t, nil
}

var createCmd = &cobra.Command{
	Use:     "create <text>",
	Short:   "Create a new draft post",
	GroupID: "posts",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := args[0]

		platform, _ := cmd.Flags().GetString("platform")
		title, _ := cmd.Flags().GetString("title")
		subreddit, _ := cmd.Flags().GetString("subreddit")
		visibility, _ := cmd.Flags().GetString("visibility")
		mediaURLs, _ := cmd.Flags().GetStringSlice("media")
		campaignID, _ := cmd.Flags().GetString("campaign")
		projectID, _ := cmd.Flags().GetString("project")
		at, _ := cmd.Flags().GetString("at")

		req := &client.CreatePostRequest{
			Platform: platform,
			Content: model.Content{
				Text:       text,
				Title:      title,
				Subreddit:  subreddit,
				Visibility: visibility,
				MediaURLs:  mediaURLs,
			},
			CampaignID: campaignID,
			ProjectID:  projectID,
		}
		if at != "" {
			t, err := parseWhen(at)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			req.ScheduledAt = &t
		}

		post, err := postsClient.CreatePost(context.Background(), req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		// --at creates the draft and schedules it in one step.
		if req.ScheduledAt != nil {
			post, err = postsClient.SchedulePost(context.Background(), post.ID, *req.ScheduledAt)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: created %s but scheduling failed: %v\n", post.ID, err)
				os.Exit(1)
			}
		}

		if jsonOutput {
			printJSON(post)
		} else {
			printPostTable(post)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringP("platform", "p", "twitter", "platform (twitter, linkedin, reddit)")
	createCmd.Flags().String("title", "", "post title (reddit)")
	createCmd.Flags().String("subreddit", "", "target subreddit (reddit)")
	createCmd.Flags().String("visibility", "", "visibility (linkedin: public, connections)")
	createCmd.Flags().StringSlice("media", nil, "media URLs (repeatable)")
	createCmd.Flags().String("campaign", "", "campaign ID")
	createCmd.Flags().String("project", "", "project ID")
	createCmd.Flags().String("at", "", "schedule immediately for this time")
}
