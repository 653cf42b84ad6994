package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := opts.logger(cmd)

			api, err := opts.catalogAPI(log)
			if err != nil {
				return err
			}

			categories, err := api.ListCategories(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME")
			for _, c := range categories {
				fmt.Fprintf(tw, "%d\t%s\n", c.ID, c.Name)
			}

			return tw.Flush()
		},
	}
}
