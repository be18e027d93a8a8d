package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/mvannatta/postqueue/internal/client"
	"github.com/mvannatta/postqueue/internal/events"
	"github.com/mvannatta/postqueue/internal/notify"
	"github.com/mvannatta/postqueue/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Short:   "Watch for due posts and alert once per post",
	GroupID: "notify",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, _ := cmd.Flags().GetDuration("interval")
		once, _ := cmd.Flags().GetBool("once")

		gatePath, err := notify.DefaultFileGatePath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		gate, err := notify.LoadFileGate(gatePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := ensurePermission(gate); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		// Initial poll catches posts that came due while not watching.
		if err := pollDue(ctx, gate); err != nil {
			return err
		}
		if once {
			return nil
		}

		natsURL := os.Getenv("POSTQUEUE_NATS_URL")
		if natsURL == "" {
			natsURL = activeRemoteNATSURL()
		}
		if natsURL != "" {
			return watchNATS(ctx, natsURL, gate)
		}
		return watchPoll(ctx, interval, gate)
	},
}

// ensurePermission prompts once on first run; a denied answer is remembered.
func ensurePermission(gate *notify.FileGate) error {
	switch gate.Permission() {
	case notify.PermissionGranted:
		return nil
	case notify.PermissionDenied:
		return fmt.Errorf("notification permission denied (edit %s to change)", "~/.local/state/postqueue/notify.toml")
	}

	fmt.Print("Allow postq to show due-post alerts on this machine? [y/N] ")
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	if answer == "y" || answer == "yes" {
		return gate.GrantPermission(notify.PermissionGranted)
	}
	if err := gate.GrantPermission(notify.PermissionDenied); err != nil {
		return err
	}
	return fmt.Errorf("notification permission denied")
}

// watchNATS consumes delivered alerts from the owner's notify subject.
func watchNATS(ctx context.Context, natsURL string, gate *notify.FileGate) error {
	// reconnectCh receives a signal when the NATS client reconnects after
	// a disconnect, so we can immediately re-poll for missed alerts.
	reconnectCh := make(chan struct{}, 1)

	sub, err := events.NewNATSSubscriber(natsURL,
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Printf("nats: disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Printf("nats: reconnected")
			select {
			case reconnectCh <- struct{}{}:
			default:
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("connecting to NATS: %w", err)
	}
	defer sub.Close()

	ch, cancel, err := sub.Subscribe(notify.SubjectPrefix + "." + owner)
	if err != nil {
		return fmt.Errorf("subscribing to notifications: %w", err)
	}
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case data, ok := <-ch:
			if !ok {
				return nil
			}
			var n notify.Notification
			if err := json.Unmarshal(data, &n); err != nil {
				log.Printf("skipping malformed notification: %v", err)
				continue
			}
			if !gate.ShouldNotify(n.Tag) {
				continue
			}
			printAlert(n.Tag, n.Title, n.Body)
			if err := gate.Mark(n.Tag); err != nil {
				return err
			}
		case <-reconnectCh:
			if err := pollDue(ctx, gate); err != nil {
				return err
			}
		}
	}
}

// watchPoll polls the server for due posts at the given interval.
func watchPoll(ctx context.Context, interval time.Duration, gate *notify.FileGate) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
		if err := pollDue(ctx, gate); err != nil {
			return err
		}
	}
}

// pollDue lists due posts and alerts each one that has not alerted here yet.
func pollDue(ctx context.Context, gate *notify.FileGate) error {
	resp, err := postsClient.ListPosts(ctx, &client.ListPostsRequest{DueOnly: true})
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, p := range resp.Posts {
		if !gate.ShouldNotify(p.ID) {
			continue
		}
		printAlert(p.ID, notify.DueTitle, p.Content.Preview())
		if err := gate.Mark(p.ID); err != nil {
			return err
		}
	}
	return nil
}

func printAlert(postID, title, body string) {
	fmt.Printf("%s  %s  %s\n", time.Now().Format("15:04:05"), ui.RenderAccent(title), postID)
	if body != "" {
		fmt.Printf("          %s\n", ui.RenderMuted(body))
	}
}

func init() {
	watchCmd.Flags().Duration("interval", 30*time.Second, "polling interval when NATS is not configured")
	watchCmd.Flags().Bool("once", false, "run a single poll and exit")
}
