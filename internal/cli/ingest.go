package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"wildmenipedia/internal/service"
)

func newIngestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load entities and their relations from a public knowledge base",
	}
	cmd.AddCommand(newSourceIngestCommand("wikidata"), newSourceIngestCommand("dbpedia"))
	return cmd
}

func newSourceIngestCommand(source string) *cobra.Command {
	var (
		limit   int
		triples int
	)

	cmd := &cobra.Command{
		Use:   source + " <term>",
		Short: "Ingest label matches for term from " + source,
		Long: `Searches labels containing the term, stores every match in the graph
and the entity index, then stores the relations of the best match.

Example:
  wildmenipedia ingest ` + source + ` "Marie Curie" --limit 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			conn, err := a.ConnectorFor(source)
			if err != nil {
				return err
			}
			stats, err := a.Ingester.WithTripleLimit(triples).Ingest(cmd.Context(), conn, strings.Join(args, " "), limit)
			if err != nil {
				return service.WrapError(err, "ingest "+source)
			}
			return printJSON(cmd.OutOrStdout(), stats)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5, "maximum label matches")
	cmd.Flags().IntVar(&triples, "triples", 200, "maximum relations stored for the best match")
	return cmd
}
