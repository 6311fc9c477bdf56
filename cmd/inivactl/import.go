package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"iniva-cms/logger"
	"iniva-cms/repositories"
	"iniva-cms/transfer"

	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var inputFile string
	var preserveEmail string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace all data with the content of an export document",
		Long: `Import deletes every record and loads the given export document in a
single transaction. When --preserve-email is set that user survives the
purge and receives posts whose author cannot be resolved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := openApp()
			if err != nil {
				return err
			}

			f, err := os.Open(inputFile)
			if err != nil {
				return fmt.Errorf("open %s: %w", inputFile, err)
			}
			defer f.Close()

			doc, err := transfer.Decode(f)
			if err != nil {
				return err
			}

			preserveUserID := ""
			if email := strings.TrimSpace(preserveEmail); email != "" {
				user, err := repositories.NewUserRepository(a.DB).GetByEmail(email)
				if err != nil {
					return fmt.Errorf("user %s not found: %w", email, err)
				}
				preserveUserID = user.ID
			} else {
				logger.Warn("no user preserved, every account will be replaced", nil)
			}

			summary, err := a.Importer.Import(cmd.Context(), doc, preserveUserID)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "Export document to import (required)")
	cmd.Flags().StringVar(&preserveEmail, "preserve-email", "", "Email of the user kept across the import")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
