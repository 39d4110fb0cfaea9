package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Anton-art/Syntropy/internal/substrate"
	"github.com/Anton-art/Syntropy/internal/workspace"
)

var factCmd = &cobra.Command{
	Use:   "fact",
	Short: "Work with the shared fact library",
}

var factAddCmd = &cobra.Command{
	Use:   "add <subject> <predicate> <object>",
	Short: "Store one subject-predicate-object triple",
	Args:  cobra.ExactArgs(3),
	RunE:  runFactAdd,
}

var factSearchCmd = &cobra.Command{
	Use:   "search <subject>",
	Short: "Search facts by subject substring",
	Args:  cobra.ExactArgs(1),
	RunE:  runFactSearch,
}

func init() {
	factCmd.AddCommand(factAddCmd)
	factCmd.AddCommand(factSearchCmd)
}

func openWorkspaceStore() (*substrate.Store, workspace.Settings, error) {
	base, err := workspace.EnsureDefault()
	if err != nil {
		return nil, workspace.Settings{}, fmt.Errorf("workspace: %w", err)
	}
	settings, err := workspace.LoadSettings(base)
	if err != nil {
		return nil, workspace.Settings{}, fmt.Errorf("settings: %w", err)
	}
	store, err := substrate.Open(workspace.SubstratePath(base))
	if err != nil {
		return nil, workspace.Settings{}, fmt.Errorf("substrate: %w", err)
	}
	return store, settings, nil
}

func runFactAdd(cmd *cobra.Command, args []string) error {
	store, settings, err := openWorkspaceStore()
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.StoreFact(args[0], args[1], args[2], settings.UserID)
	if err != nil {
		return fmt.Errorf("store fact: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Stored fact %s\n", id)
	return nil
}

func runFactSearch(cmd *cobra.Command, args []string) error {
	store, _, err := openWorkspaceStore()
	if err != nil {
		return err
	}
	defer store.Close()

	facts, err := store.SearchFacts(args[0])
	if err != nil {
		return fmt.Errorf("search facts: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(facts) == 0 {
		fmt.Fprintln(out, "No facts found.")
		return nil
	}
	for _, f := range facts {
		when := time.Unix(int64(f.CreatedAt), 0).Format(time.RFC3339)
		fmt.Fprintf(out, "%s  %s %s %s  (by %s at %s)\n", f.ID, f.Subject, f.Predicate, f.Object, f.SourceAgent, when)
	}
	return nil
}
