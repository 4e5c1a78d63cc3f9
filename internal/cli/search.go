package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>...",
		Short: "Search the product catalog",
		Long: `Search the product catalog with free text or an exact item number.

Only products with all display fields and an available 3D model are
returned. The result is a JSON array on standard output; no matches
produce an empty array.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			results, err := client.Search(strings.Join(args, " "))
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(results, "", "    ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
