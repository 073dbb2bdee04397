package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewReadCommand creates the read command.
func NewReadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "read TYPE FULL_NAME [FULL_NAME...]",
		Short: "Read metadata components by full name",
		Long:  "Read one or more components of a metadata type and print their definitions.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			result, err := client.Metadata().ReadMetadata(context.Background(), args[0], args[1:])
			if err != nil {
				return fmt.Errorf("read failed: %w", err)
			}

			return RenderResult(result)
		},
	}
}
