package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvannatta/postqueue/internal/client"
)

var campaignCmd = &cobra.Command{
	Use:     "campaign",
	Short:   "Manage campaigns",
	GroupID: "content",
}

var campaignCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a campaign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		projectID, _ := cmd.Flags().GetString("project")
		starts, _ := cmd.Flags().GetString("starts")
		ends, _ := cmd.Flags().GetString("ends")

		req := &client.CreateCampaignRequest{
			Name:        args[0],
			Description: description,
			ProjectID:   projectID,
		}
		if starts != "" {
			t, err := parseWhen(starts)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			req.StartsAt = &t
		}
		if ends != "" {
			t, err := parseWhen(ends)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			req.EndsAt = &t
		}

		campaign, err := postsClient.CreateCampaign(context.Background(), req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(campaign)
		} else {
			printCampaignTable(campaign)
		}
		return nil
	},
}

var campaignShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a campaign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		campaign, err := postsClient.GetCampaign(context.Background(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(campaign)
		} else {
			printCampaignTable(campaign)
		}
		return nil
	},
}

var campaignListCmd = &cobra.Command{
	Use:   "list",
	Short: "List campaigns",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		campaigns, err := postsClient.ListCampaigns(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(campaigns)
		} else {
			printCampaignListTable(campaigns)
		}
		return nil
	},
}

var campaignUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a campaign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &client.UpdateCampaignRequest{}
		if cmd.Flags().Changed("name") {
			v, _ := cmd.Flags().GetString("name")
			req.Name = &v
		}
		if cmd.Flags().Changed("description") {
			v, _ := cmd.Flags().GetString("description")
			req.Description = &v
		}
		if cmd.Flags().Changed("project") {
			v, _ := cmd.Flags().GetString("project")
			req.ProjectID = &v
		}
		if cmd.Flags().Changed("starts") {
			v, _ := cmd.Flags().GetString("starts")
			t, err := parseWhen(v)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			req.StartsAt = &t
		}
		if cmd.Flags().Changed("ends") {
			v, _ := cmd.Flags().GetString("ends")
			t, err := parseWhen(v)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			req.EndsAt = &t
		}

		campaign, err := postsClient.UpdateCampaign(context.Background(), args[0], req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(campaign)
		} else {
			printCampaignTable(campaign)
		}
		return nil
	},
}

var campaignDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a campaign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := postsClient.DeleteCampaign(context.Background(), args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

func init() {
	campaignCreateCmd.Flags().StringP("description", "d", "", "campaign description")
	campaignCreateCmd.Flags().String("project", "", "project ID")
	campaignCreateCmd.Flags().String("starts", "", "campaign start time")
	campaignCreateCmd.Flags().String("ends", "", "campaign end time")

	campaignUpdateCmd.Flags().String("name", "", "campaign name")
	campaignUpdateCmd.Flags().StringP("description", "d", "", "campaign description")
	campaignUpdateCmd.Flags().String("project", "", "project ID")
	campaignUpdateCmd.Flags().String("starts", "", "campaign start time")
	campaignUpdateCmd.Flags().String("ends", "", "campaign end time")

	campaignCmd.AddCommand(campaignCreateCmd)
	campaignCmd.AddCommand(campaignShowCmd)
	campaignCmd.AddCommand(campaignListCmd)
	campaignCmd.AddCommand(campaignUpdateCmd)
	campaignCmd.AddCommand(campaignDeleteCmd)
}
