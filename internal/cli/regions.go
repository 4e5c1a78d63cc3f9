package cli

import (
	"encoding/json"
	"fmt"

	"github.com/rohmanhakim/ikea-catalog/internal/metadata"
	"github.com/rohmanhakim/ikea-catalog/internal/regions"
	"github.com/spf13/cobra"
)

func newRegionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List regional sites and their language URLs",
		Long: `Fetch the shared regions dataset and print a JSON map of
site name to language to site URL. Useful for picking --country and
--language values.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := InitConfigWithError()
			if err != nil {
				return err
			}
			recorder := metadata.NewRecorder(logger)
			fetcher := regions.NewFetcher(cfg.Timeout(), &recorder)
			regionMap, err := fetcher.Fetch()
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(regionMap, "", "    ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
