package main

import (
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvannatta/postqueue/internal/client"
	"github.com/mvannatta/postqueue/internal/ui"
)

var (
	serverURL  string
	jsonOutput bool
	owner      string

	postsClient client.PostsClient
)

func defaultOwner() string {
	if o := os.Getenv("POSTQUEUE_OWNER"); o != "" {
		return o
	}
	out, err := exec.Command("git", "config", "user.name").Output()
	if err == nil {
		name := strings.TrimSpace(string(out))
		if name != "" {
			return name
		}
	}
	return "default"
}

func defaultServer() string {
	if s := os.Getenv("POSTQUEUE_SERVER"); s != "" {
		return s
	}
	if u := activeRemoteURL(); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func authToken() string {
	if t := os.Getenv("POSTQUEUE_TOKEN"); t != "" {
		return t
	}
	return activeRemoteToken()
}

var rootCmd = &cobra.Command{
	Use:   "postq <command>",
	Short: "CLI client for the post queue service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		postsClient = client.NewHTTPClient(serverURL, authToken(), owner)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if postsClient != nil {
			postsClient.Close()
		}
	},
}

func init() {
	if !ui.ShouldUseColor() {
		ui.ForceNoColor()
	}

	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer(), "HTTP server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&owner, "owner", defaultOwner(), "owner identity for all requests")

	rootCmd.AddGroup(
		&cobra.Group{ID: "posts", Title: "Posts:"},
		&cobra.Group{ID: "content", Title: "Campaigns & Drafts:"},
		&cobra.Group{ID: "notify", Title: "Notifications:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	cobra.EnableCommandSorting = false

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(unscheduleCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(campaignCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(mediaCmd)
	rootCmd.AddCommand(notifyCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(remoteCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
