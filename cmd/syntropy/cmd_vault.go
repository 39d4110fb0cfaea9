package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Anton-art/Syntropy/internal/substrate"
	"github.com/Anton-art/Syntropy/internal/workspace"
)

var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Work with the private draft vault",
}

var vaultSaveFlags struct {
	tags []string
}

var vaultSaveCmd = &cobra.Command{
	Use:   "save <content>",
	Short: "Save a raw draft, no validation",
	Args:  cobra.ExactArgs(1),
	RunE:  runVaultSave,
}

var vaultGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Retrieve a draft by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runVaultGet,
}

func init() {
	vaultSaveCmd.Flags().StringSliceVar(&vaultSaveFlags.tags, "tag", nil, "Tags to attach (repeatable)")
	vaultCmd.AddCommand(vaultSaveCmd)
	vaultCmd.AddCommand(vaultGetCmd)
}

func openVault() (*substrate.Vault, error) {
	base, err := workspace.EnsureDefault()
	if err != nil {
		return nil, fmt.Errorf("workspace: %w", err)
	}
	vault, err := substrate.OpenVault(workspace.VaultPath(base))
	if err != nil {
		return nil, fmt.Errorf("vault: %w", err)
	}
	return vault, nil
}

func runVaultSave(cmd *cobra.Command, args []string) error {
	vault, err := openVault()
	if err != nil {
		return err
	}
	defer vault.Close()

	id, err := vault.SaveDraft(args[0], vaultSaveFlags.tags)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved draft %s\n", id)
	return nil
}

func runVaultGet(cmd *cobra.Command, args []string) error {
	vault, err := openVault()
	if err != nil {
		return err
	}
	defer vault.Close()

	draft, err := vault.Retrieve(args[0])
	if err != nil {
		return fmt.Errorf("retrieve draft: %w", err)
	}
	out := cmd.OutOrStdout()
	if draft == nil {
		fmt.Fprintln(out, "No draft with that id.")
		return nil
	}
	fmt.Fprintf(out, "Tags:    %s\n", strings.Join(draft.Tags, ", "))
	fmt.Fprintf(out, "Content: %s\n", draft.Content)
	return nil
}
