package cli

import (
	"github.com/spf13/cobra"

	"wildmenipedia/internal/scrape"
)

func newFetchCommand() *cobra.Command {
	var noRobots bool

	cmd := &cobra.Command{
		Use:   "fetch <url>...",
		Short: "Fetch pages and print the extracted documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
			}
			opts := cfg.ScrapeOptions()
			if noRobots {
				opts.RespectRobots = false
			}
			pages := scrape.NewFetcher(opts).FetchAll(cmd.Context(), args)
			return printJSON(cmd.OutOrStdout(), pages)
		},
	}

	cmd.Flags().BoolVar(&noRobots, "no-robots", false, "ignore robots.txt")
	return cmd
}
