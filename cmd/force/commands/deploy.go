package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/trestletech/goforce/pkg/force"
)

// NewDeployCommand creates the deploy command.
func NewDeployCommand() *cobra.Command {
	var (
		checkOnly       bool
		ignoreWarnings  bool
		purgeOnDelete   bool
		rollbackOnError bool
		singlePackage   bool
		testLevel       string
		runTests        []string
		wait            time.Duration
	)

	cmd := &cobra.Command{
		Use:   "deploy ZIP_PATH",
		Short: "Deploy a metadata zip archive",
		Long: `Start a deploy job for the archive at ZIP_PATH. With --wait the command
polls until the job finishes and prints the final status.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			options := force.DeployOptions{
				CheckOnly:       checkOnly,
				IgnoreWarnings:  ignoreWarnings,
				PurgeOnDelete:   purgeOnDelete,
				RollbackOnError: rollbackOnError,
				SinglePackage:   singlePackage,
				TestLevel:       testLevel,
				RunTests:        runTests,
			}

			id, err := client.Metadata().Deploy(ctx, args[0], options)
			if err != nil {
				return fmt.Errorf("deploy failed: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deploy started: %s\n", id)

			if wait == 0 {
				_, _ = fmt.Fprintf(os.Stdout, "Check progress with: force deploy-status %s\n", id)

				return nil
			}

			result, err := pollUntilDone(ctx, wait, func(ctx context.Context) (*force.Result, error) {
				return client.Metadata().CheckDeployStatus(ctx, id, false)
			})
			if err != nil {
				return err
			}

			return RenderResult(result)
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check-only", false, "validate without saving changes")
	cmd.Flags().BoolVar(&ignoreWarnings, "ignore-warnings", false, "proceed despite warnings")
	cmd.Flags().BoolVar(&purgeOnDelete, "purge-on-delete", false, "hard-delete removed components")
	cmd.Flags().BoolVar(&rollbackOnError, "rollback-on-error", true, "roll everything back on any failure")
	cmd.Flags().BoolVar(&singlePackage, "single-package", true, "treat the archive as a single package")
	cmd.Flags().StringVar(&testLevel, "test-level", "", "test level (NoTestRun, RunSpecifiedTests, RunLocalTests, RunAllTestsInOrg)")
	cmd.Flags().StringSliceVar(&runTests, "run-tests", nil, "test classes for RunSpecifiedTests")
	cmd.Flags().DurationVar(&wait, "wait", 0, "poll until done, giving up after this duration")

	return cmd
}

// NewDeployStatusCommand creates the deploy-status command.
func NewDeployStatusCommand() *cobra.Command {
	var details bool

	cmd := &cobra.Command{
		Use:   "deploy-status JOB_ID",
		Short: "Check the status of a deploy job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			result, err := client.Metadata().CheckDeployStatus(context.Background(), args[0], details)
			if err != nil {
				return fmt.Errorf("deploy-status failed: %w", err)
			}

			return RenderResult(result)
		},
	}

	cmd.Flags().BoolVar(&details, "details", false, "include per-component detail blocks")

	return cmd
}

// NewDeployCancelCommand creates the deploy-cancel command.
func NewDeployCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy-cancel JOB_ID",
		Short: "Cancel a running deploy job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			result, err := client.Metadata().CancelDeploy(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("deploy-cancel failed: %w", err)
			}

			return RenderResult(result)
		},
	}
}

// NewDeployValidatedCommand creates the deploy-validated command.
func NewDeployValidatedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy-validated VALIDATION_ID",
		Short: "Quick-deploy a recently validated deployment",
		Long:  "Promote a check-only deployment that already passed validation, skipping the test run.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			id, err := client.Metadata().DeployRecentValidation(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("deploy-validated failed: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deploy started: %s\n", id)
			_, _ = fmt.Fprintf(os.Stdout, "Check progress with: force deploy-status %s\n", id)

			return nil
		},
	}
}

// NewRetrieveStatusCommand creates the retrieve-status command.
func NewRetrieveStatusCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "retrieve-status JOB_ID",
		Short: "Check the status of a retrieve job",
		Long:  "Check a retrieve job and, once it has succeeded, write the archive to --out.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			result, err := client.Metadata().CheckRetrieveStatus(context.Background(), args[0], out)
			if err != nil {
				return fmt.Errorf("retrieve-status failed: %w", err)
			}

			return RenderResult(result)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "destination zip path (omit to skip the archive)")

	return cmd
}
