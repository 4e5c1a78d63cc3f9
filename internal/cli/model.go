package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newModelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "model <itemNo>",
		Short: "Download the 3D model for an item",
		Long: `Download the GLB model for an item into the cache and print the
path of the cached file. Fails when no model is available for the item.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			path, err := client.GetModel(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
