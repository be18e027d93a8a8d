package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:     "show <id>",
	Short:   "Show a post",
	GroupID: "posts",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		post, err := postsClient.GetPost(context.Background(), args[0])
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

var eventsCmd = &cobra.Command{
	Use:     "events <id>",
	Short:   "Show the event history of a post",
	GroupID: "posts",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := postsClient.GetEvents(context.Background(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(events)
		} else {
			printEventListTable(events)
		}
		return nil
	},
}
