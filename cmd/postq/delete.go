package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Short:   "Delete a post",
	GroupID: "posts",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := postsClient.DeletePost(context.Background(), args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:     "reset",
	Short:   "Delete all posts for this owner (test environments only)",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Fprintln(os.Stderr, "refusing to reset without --yes")
			os.Exit(1)
		}

		n, err := postsClient.ResetPosts(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("deleted %d posts\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "confirm the reset")
}
