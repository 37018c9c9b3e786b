// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/resource-pdfs/pkg/types"
)

// downloadPrefix is the URL path the website serves the output directory under.
const downloadPrefix = "/templates/"

// resourceCard is the resources page entry for one template.
type resourceCard struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Format      string   `json:"format"`
	DownloadURL string   `json:"downloadUrl"`
	Highlights  []string `json:"highlights,omitempty"`
}

func newResourceCard(t types.Template) resourceCard {
	title := t.CardTitle
	if title == "" {
		title = t.Title
	}
	return resourceCard{
		ID:          t.ID,
		Title:       title,
		Description: t.Description,
		Format:      "PDF",
		DownloadURL: path.Join(downloadPrefix, t.Filename),
		Highlights:  t.Highlights,
	}
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the templates in the catalog",
	Long: `List prints each template's id, output file and title in generation order.
With --json it prints the resources page card data instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		templates, err := loadTemplates(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			cards := make([]resourceCard, len(templates))
			for i, t := range templates {
				cards[i] = newResourceCard(t)
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(cards)
		}

		fmt.Fprintf(out, "%-22s  %-36s  %s\n", "ID", "File", "Title")
		fmt.Fprintln(out, strings.Repeat("-", 100))
		for _, t := range templates {
			fmt.Fprintf(out, "%-22s  %-36s  %s\n", t.ID, t.Filename, t.Title)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().Bool("json", false, "output resources page card data as JSON")

	rootCmd.AddCommand(listCmd)
}
