package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func newTagsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Query and inspect the tag vocabulary",
	}
	cmd.AddCommand(
		newTagsQueryCmd(opts),
		newTagsStatsCmd(opts),
	)
	return cmd
}

func newTagsQueryCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "query <partial>",
		Short: "Show suggestion candidates for a partial tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			candidates := a.Engine().Query(args[0], limit)
			if len(candidates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no matches")
				return nil
			}
			for _, c := range candidates {
				line := fmt.Sprintf("%-30s %8d  %s", c.Entry.Name, c.Entry.Weight, c.Kind)
				if len(c.Entry.Aliases) > 0 {
					line += "  (" + strings.Join(c.Entry.Aliases, ", ") + ")"
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum candidates to show (0 uses the configured limit)")
	return cmd
}

func newTagsStatsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the loaded vocabulary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			c := a.Engine().Corpus()
			fmt.Fprintf(cmd.OutOrStdout(), "tags: %d\n", c.Len())

			aliases := 0
			byCategory := make(map[int]int)
			for _, e := range c.Entries() {
				aliases += len(e.Aliases)
				byCategory[e.Category]++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "aliases: %d\n", aliases)

			categories := make([]int, 0, len(byCategory))
			for cat := range byCategory {
				categories = append(categories, cat)
			}
			sort.Ints(categories)
			for _, cat := range categories {
				fmt.Fprintf(cmd.OutOrStdout(), "category %d: %d\n", cat, byCategory[cat])
			}
			return nil
		},
	}
	return cmd
}
