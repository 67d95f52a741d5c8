package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-suggest/services"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func (app *cli) searchCmd() *cobra.Command {
	var (
		limit     int
		minScore  int
		fields    []string
		suggest   bool
		namespace string
		noRecent  bool
	)

	cmd := &cobra.Command{
		Use:   "search <collection> [query]",
		Short: "Rank a collection against a query",
		Long: `Rank a collection against a query and print the hits as JSON.

With --suggest the autocomplete rules apply: recent selections of --namespace
come first on an empty query and a literal substring match is tried when
nothing matches fuzzily.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			cat, backend := openCatalog(cfg)
			defer backend.Close()

			col, err := cat.GetCollection(args[0])
			if err != nil {
				return err
			}
			query := ""
			if len(args) == 2 {
				query = args[1]
			}

			var limitPtr, minScorePtr *int
			if cmd.Flags().Changed("limit") {
				limitPtr = &limit
			}
			if cmd.Flags().Changed("min-score") {
				minScorePtr = &minScore
			}

			var result services.SearchResult
			if suggest {
				q := services.SuggestQuery{
					Query:        query,
					Limit:        limitPtr,
					MinScore:     minScorePtr,
					SearchFields: fields,
					Namespace:    namespace,
				}
				if noRecent {
					disabled := false
					q.IncludeRecent = &disabled
				}
				result, err = col.Suggest(q)
			} else {
				result, err = col.Search(services.SearchQuery{
					Query:        query,
					Limit:        limitPtr,
					MinScore:     minScorePtr,
					SearchFields: fields,
				})
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of hits (default from collection settings)")
	cmd.Flags().IntVar(&minScore, "min-score", 0, "minimum score (default from collection settings)")
	cmd.Flags().StringSliceVar(&fields, "fields", nil, "fields to score, in priority order")
	cmd.Flags().BoolVar(&suggest, "suggest", false, "use autocomplete suggestions instead of plain search")
	cmd.Flags().StringVar(&namespace, "namespace", "", "recent selections namespace used with --suggest")
	cmd.Flags().BoolVar(&noRecent, "no-recent", false, "ignore recent selections with --suggest")
	return cmd
}

func (app *cli) lettersCmd() *cobra.Command {
	var (
		groups   bool
		from, to string
	)

	cmd := &cobra.Command{
		Use:   "letters <collection>",
		Short: "List the first Hebrew letters of a collection",
		Long: `List the first Hebrew letters present in a collection, in alphabet order.
With --groups the candidates are printed bucketed by letter, optionally
restricted to the inclusive range --from..--to.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			cat, backend := openCatalog(cfg)
			defer backend.Close()

			col, err := cat.GetCollection(args[0])
			if err != nil {
				return err
			}
			if groups || from != "" || to != "" {
				return writeJSON(cmd.OutOrStdout(), col.Groups(from, to))
			}
			for _, letter := range col.Letters() {
				fmt.Fprintln(cmd.OutOrStdout(), letter)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&groups, "groups", false, "print candidates grouped by first letter")
	cmd.Flags().StringVar(&from, "from", "", "first letter of the range (implies --groups)")
	cmd.Flags().StringVar(&to, "to", "", "last letter of the range (implies --groups)")
	return cmd
}
