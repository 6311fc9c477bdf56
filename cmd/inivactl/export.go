package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every table to a JSON document",
		Long: `Export users, hubs, actors, appointments, contacts, blog categories,
tags, posts and settings into one JSON document that import accepts.

Examples:
  inivactl export                     # JSON to stdout
  inivactl export -o data-export.json # JSON to file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := openApp()
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if outputFile != "" {
				f, err := os.Create(outputFile)
				if err != nil {
					return fmt.Errorf("create %s: %w", outputFile, err)
				}
				defer f.Close()
				w = f
			}

			doc, err := a.Exporter.ExportToWriter(cmd.Context(), w)
			if err != nil {
				return err
			}

			if outputFile != "" {
				c := doc.Counts()
				fmt.Fprintf(cmd.ErrOrStderr(), "exported to %s: %d users, %d hubs, %d actors, %d appointments, %d contacts, %d categories, %d tags, %d posts, %d settings\n",
					outputFile, c.Users, c.Hubs, c.Actors, c.Appointments, c.Contacts, c.Categories, c.Tags, c.BlogPosts, c.Settings)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	return cmd
}
