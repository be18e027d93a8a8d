package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var notifyCmd = &cobra.Command{
	Use:     "notify",
	Short:   "Manage due-alert settings and the notification log",
	GroupID: "notify",
}

var notifyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether due alerts are enabled",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		enabled, err := postsClient.GetNotifySettings(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if enabled {
			fmt.Println("notifications enabled")
		} else {
			fmt.Println("notifications disabled")
		}
		return nil
	},
}

var notifyOnCmd = &cobra.Command{
	Use:   "on",
	Short: "Enable due alerts",
	Args:  cobra.NoArgs,
	RunE:  setNotifyRunE(true),
}

var notifyOffCmd = &cobra.Command{
	Use:   "off",
	Short: "Disable due alerts",
	Args:  cobra.NoArgs,
	RunE:  setNotifyRunE(false),
}

func setNotifyRunE(enabled bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := postsClient.SetNotifySettings(context.Background(), enabled); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if enabled {
			fmt.Println("notifications enabled")
		} else {
			fmt.Println("notifications disabled")
		}
		return nil
	}
}

var notifyLogCmd = &cobra.Command{
	Use:   "log",
	Short: "List posts that have already alerted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := postsClient.GetNotifyLog(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(entries)
			return nil
		}
		if len(entries) == 0 {
			fmt.Println("no notifications sent")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "POST\tNOTIFIED AT")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\n", e.PostID, e.NotifiedAt.Local().Format(timeLayout))
		}
		return w.Flush()
	},
}

var notifyClearCmd = &cobra.Command{
	Use:   "clear <post-id>",
	Short: "Clear a post's ledger entry so it can alert again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := postsClient.ClearNotifyLog(context.Background(), args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("cleared %s\n", args[0])
		return nil
	},
}

func init() {
	notifyCmd.AddCommand(notifyStatusCmd)
	notifyCmd.AddCommand(notifyOnCmd)
	notifyCmd.AddCommand(notifyOffCmd)
	notifyCmd.AddCommand(notifyLogCmd)
	notifyCmd.AddCommand(notifyClearCmd)
}
