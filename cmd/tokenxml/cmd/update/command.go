// Package update provides the update command implementation.
package update

import (
	"github.com/spf13/cobra"

	"github.com/SlightlyCircuitous/update-token-xml/internal/cmd/application"
)

// NewCommand creates the update command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "update <set> <catalog.xml>",
		GroupID: "core",
		Short:   "Synchronize a token catalog with the tokens of a set",
		Args:    cobra.ExactArgs(2),
		Long: `Update fetches every token of a set from Scryfall and compares each one
against the Cockatrice token catalog.

The command will:
• Append a set line to each catalog entry that matches a reprinted token
• Create a complete entry for each token the catalog does not have yet
• Write <set>_new_tokens.xml with the new entries only
• Write token_file_<set>_update.xml with the amended catalog

Related and reverse-related elements of new entries are left empty for
manual review.`,
		Example: `  tokenxml update mh3 tokens.xml                  # Update against Modern Horizons 3
  tokenxml update mh3 tokens.xml --dry-run        # Preview counts without writing files
  tokenxml update mh3 tokens.xml -o json          # Machine-readable report
  tokenxml update mh3 tokens.xml --output-dir out # Write files to ./out`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), app, flags, args[0], args[1], cmd.OutOrStdout())
		},
	}

	flags = addUpdateFlags(cmd)

	return cmd
}
