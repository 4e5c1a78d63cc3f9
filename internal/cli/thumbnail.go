package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newThumbnailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "thumbnail <itemNo> <url>",
		Short: "Download a product thumbnail",
		Long: `Download the thumbnail at the given URL into the item's cache
directory and print the path of the cached file. The URL comes from a
prior search result.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			path, err := client.GetThumbnail(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
