package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var eventsFlags struct {
	limit int
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show recent entries of the shared event log",
	RunE:  runEvents,
}

func init() {
	eventsCmd.Flags().IntVar(&eventsFlags.limit, "limit", 20, "Maximum events to show")
}

func runEvents(cmd *cobra.Command, _ []string) error {
	store, _, err := openWorkspaceStore()
	if err != nil {
		return err
	}
	defer store.Close()

	events, err := store.RecentEvents(eventsFlags.limit)
	if err != nil {
		return fmt.Errorf("recent events: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(out, "No events recorded.")
		return nil
	}
	for _, e := range events {
		when := time.Unix(int64(e.CreatedAt), 0).Format(time.RFC3339)
		fmt.Fprintf(out, "%s  [%s] %s (%s)\n", when, e.EventType, e.Description, e.AgentID)
	}
	return nil
}
