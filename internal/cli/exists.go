package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exists <itemNo>",
		Short: "Check whether a 3D model exists for an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			exists, err := client.GetExists(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), exists)
			return nil
		},
	}
}
