package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trestletech/goforce/pkg/force"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var folder string

	cmd := &cobra.Command{
		Use:   "list TYPE [TYPE...]",
		Short: "List components of one or more metadata types",
		Long: `List the components of up to three metadata types. Foldered types such
as Report and Dashboard take --folder to select the folder.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			queries := make([]force.ListQuery, len(args))
			for i, typeName := range args {
				queries[i] = force.ListQuery{Type: typeName, Folder: folder}
			}

			result, err := client.Metadata().ListMetadata(context.Background(), queries)
			if err != nil {
				return fmt.Errorf("list failed: %w", err)
			}

			return RenderResult(result)
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "folder for foldered types")

	return cmd
}
