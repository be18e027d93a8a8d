package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvannatta/postqueue/internal/model"
)

var scheduleCmd = &cobra.Command{
	Use:     "schedule <id> <time>",
	Short:   "Schedule a draft post for publication",
	GroupID: "posts",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := parseWhen(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		post, err := postsClient.SchedulePost(context.Background(), args[0], at)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printTransitioned(post)
		return nil
	},
}

var unscheduleCmd = &cobra.Command{
	Use:     "unschedule <id>",
	Short:   "Return a scheduled post to draft",
	GroupID: "posts",
	Args:    cobra.ExactArgs(1),
	RunE:    transitionRunE(func(ctx context.Context, id string) (*model.Post, error) { return postsClient.UnschedulePost(ctx, id) }),
}

var publishCmd = &cobra.Command{
	Use:     "publish <id>",
	Short:   "Mark a post as published",
	GroupID: "posts",
	Args:    cobra.ExactArgs(1),
	RunE:    transitionRunE(func(ctx context.Context, id string) (*model.Post, error) { return postsClient.PublishPost(ctx, id) }),
}

var archiveCmd = &cobra.Command{
	Use:     "archive <id>",
	Short:   "Archive a post",
	GroupID: "posts",
	Args:    cobra.ExactArgs(1),
	RunE:    transitionRunE(func(ctx context.Context, id string) (*model.Post, error) { return postsClient.ArchivePost(ctx, id) }),
}

var restoreCmd = &cobra.Command{
	Use:     "restore <id>",
	Short:   "Restore an archived post to draft",
	GroupID: "posts",
	Args:    cobra.ExactArgs(1),
	RunE:    transitionRunE(func(ctx context.Context, id string) (*model.Post, error) { return postsClient.RestorePost(ctx, id) }),
}

func transitionRunE(fn func(ctx context.Context, id string) (*model.Post, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		post, err := fn(context.Background(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printTransitioned(post)
		return nil
	}
}

func printTransitioned(post *model.Post) {
	if jsonOutput {
		printJSON(post)
	} else {
		printPostTable(post)
	}
}
