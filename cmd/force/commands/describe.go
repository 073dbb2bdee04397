package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewDescribeCommand creates the describe command.
func NewDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "List the metadata types the organization supports",
		Long:  "Describe the metadata types available in the organization, one row per type.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			result, err := client.Metadata().DescribeMetadata(context.Background())
			if err != nil {
				return fmt.Errorf("describe failed: %w", err)
			}

			return RenderResult(result)
		},
	}
}
