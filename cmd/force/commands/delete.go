package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete TYPE FULL_NAME [FULL_NAME...]",
		Short: "Delete metadata components",
		Long:  "Delete one or more components of a metadata type by full name.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			typeName := args[0]
			fullNames := args[1:]

			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Really delete %s '%s'? (y/N): ",
					typeName, strings.Join(fullNames, "', '"))

				var response string

				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					_, _ = os.Stdout.WriteString("Cancelled\n")

					return nil
				}
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			result, err := client.Metadata().DeleteMetadata(context.Background(), typeName, fullNames)
			if err != nil {
				return fmt.Errorf("delete failed: %w", err)
			}

			return RenderResult(result)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}

// NewRenameCommand creates the rename command.
func NewRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename TYPE OLD_FULL_NAME NEW_FULL_NAME",
		Short: "Rename a metadata component",
		Long:  "Rename one component of a metadata type.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			result, err := client.Metadata().RenameMetadata(context.Background(), args[0], args[1], args[2])
			if err != nil {
				return fmt.Errorf("rename failed: %w", err)
			}

			return RenderResult(result)
		},
	}
}
