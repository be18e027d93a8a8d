package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvannatta/postqueue/internal/client"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List posts",
	GroupID: "posts",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetStringSlice("status")
		platform, _ := cmd.Flags().GetStringSlice("platform")
		campaignID, _ := cmd.Flags().GetString("campaign")
		projectID, _ := cmd.Flags().GetString("project")
		search, _ := cmd.Flags().GetString("search")
		sort, _ := cmd.Flags().GetString("sort")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		req := &client.ListPostsRequest{
			Status:     status,
			Platform:   platform,
			CampaignID: campaignID,
			ProjectID:  projectID,
			Search:     search,
			Sort:       sort,
			Limit:      limit,
			Offset:     offset,
		}

		resp, err := postsClient.ListPosts(context.Background(), req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(resp.Posts)
		} else {
			printPostListTable(resp.Posts, resp.Total)
		}
		return nil
	},
}

var dueCmd = &cobra.Command{
	Use:     "due",
	Short:   "List scheduled posts whose time has arrived",
	GroupID: "posts",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := postsClient.ListPosts(context.Background(), &client.ListPostsRequest{DueOnly: true})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(resp.Posts)
		} else {
			printPostListTable(resp.Posts, resp.Total)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringSliceP("status", "s", nil, "filter by status (repeatable)")
	listCmd.Flags().StringSliceP("platform", "p", nil, "filter by platform (repeatable)")
	listCmd.Flags().String("campaign", "", "filter by campaign ID")
	listCmd.Flags().String("project", "", "filter by project ID")
	listCmd.Flags().String("search", "", "full-text search over content")
	listCmd.Flags().String("sort", "", "sort order (created_at, scheduled_at, updated_at)")
	listCmd.Flags().Int("limit", 50, "maximum results")
	listCmd.Flags().Int("offset", 0, "result offset")
}
