package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvannatta/postqueue/internal/client"
)

var draftCmd = &cobra.Command{
	Use:     "draft",
	Short:   "Manage blog drafts",
	GroupID: "content",
}

var draftCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a blog draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, _ := cmd.Flags().GetString("body")
		bodyFile, _ := cmd.Flags().GetString("body-file")
		tags, _ := cmd.Flags().GetStringSlice("tag")
		projectID, _ := cmd.Flags().GetString("project")

		if bodyFile != "" {
			data, err := readBodyFile(bodyFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			body = data
		}

		draft, err := postsClient.CreateDraft(context.Background(), &client.CreateDraftRequest{
			Title:     args[0],
			Body:      body,
			Tags:      tags,
			ProjectID: projectID,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(draft)
		} else {
			printDraftTable(draft)
		}
		return nil
	},
}

// readBodyFile reads the draft body from a file, or stdin when path is "-".
func readBodyFile(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

var draftShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a blog draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		draft, err := postsClient.GetDraft(context.Background(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(draft)
		} else {
			printDraftTable(draft)
		}
		return nil
	},
}

var draftListCmd = &cobra.Command{
	Use:   "list",
	Short: "List blog drafts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		drafts, err := postsClient.ListDrafts(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(drafts)
		} else {
			printDraftListTable(drafts)
		}
		return nil
	},
}

var draftUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a blog draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &client.UpdateDraftRequest{}
		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			req.Title = &v
		}
		if cmd.Flags().Changed("body") {
			v, _ := cmd.Flags().GetString("body")
			req.Body = &v
		}
		if cmd.Flags().Changed("body-file") {
			path, _ := cmd.Flags().GetString("body-file")
			data, err := readBodyFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			req.Body = &data
		}
		if cmd.Flags().Changed("tag") {
			req.Tags, _ = cmd.Flags().GetStringSlice("tag")
		}
		if cmd.Flags().Changed("project") {
			v, _ := cmd.Flags().GetString("project")
			req.ProjectID = &v
		}
		if cmd.Flags().Changed("published") {
			v, _ := cmd.Flags().GetBool("published")
			req.Published = &v
		}

		draft, err := postsClient.UpdateDraft(context.Background(), args[0], req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(draft)
		} else {
			printDraftTable(draft)
		}
		return nil
	},
}

var draftDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a blog draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := postsClient.DeleteDraft(context.Background(), args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

func init() {
	draftCreateCmd.Flags().StringP("body", "b", "", "draft body")
	draftCreateCmd.Flags().String("body-file", "", "read the body from a file (- for stdin)")
	draftCreateCmd.Flags().StringSliceP("tag", "t", nil, "tags (repeatable)")
	draftCreateCmd.Flags().String("project", "", "project ID")

	draftUpdateCmd.Flags().String("title", "", "draft title")
	draftUpdateCmd.Flags().StringP("body", "b", "", "draft body")
	draftUpdateCmd.Flags().String("body-file", "", "read the body from a file (- for stdin)")
	draftUpdateCmd.Flags().StringSliceP("tag", "t", nil, "tags (replaces the list)")
	draftUpdateCmd.Flags().String("project", "", "project ID")
	draftUpdateCmd.Flags().Bool("published", false, "published flag")

	draftCmd.AddCommand(draftCreateCmd)
	draftCmd.AddCommand(draftShowCmd)
	draftCmd.AddCommand(draftListCmd)
	draftCmd.AddCommand(draftUpdateCmd)
	draftCmd.AddCommand(draftDeleteCmd)
}
