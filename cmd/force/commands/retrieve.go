package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/trestletech/goforce/pkg/force"
)

// ErrJobTimedOut reports that --wait polling gave up before the async job
// reached a terminal state.
var ErrJobTimedOut = errors.New("timed out waiting for job to finish")

const defaultPollInterval = 5 * time.Second

// NewRetrieveCommand creates the retrieve command.
func NewRetrieveCommand() *cobra.Command {
	var (
		types         []string
		members       []string
		packageNames  []string
		out           string
		singlePackage bool
		wait          time.Duration
	)

	cmd := &cobra.Command{
		Use:   "retrieve",
		Short: "Retrieve metadata components as a zip archive",
		Long: `Start a retrieve job for the named types and members. With --wait the
command polls until the job finishes and writes the archive to --out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(types) == 0 && len(packageNames) == 0 {
				return ErrTypeRequired
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			request := force.RetrieveRequest{
				SinglePackage: singlePackage,
				PackageNames:  packageNames,
			}

			if len(types) > 0 {
				manifest := &force.Package{}
				for _, typeName := range types {
					manifest.Types = append(manifest.Types, force.PackageTypeMembers{
						Name:    typeName,
						Members: members,
					})
				}

				request.Unpackaged = manifest
			}

			id, err := client.Metadata().Retrieve(ctx, request)
			if err != nil {
				return fmt.Errorf("retrieve failed: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Retrieve started: %s\n", id)

			if wait == 0 {
				_, _ = fmt.Fprintf(os.Stdout, "Check progress with: force retrieve-status %s\n", id)

				return nil
			}

			result, err := pollUntilDone(ctx, wait, func(ctx context.Context) (*force.Result, error) {
				return client.Metadata().CheckRetrieveStatus(ctx, id, out)
			})
			if err != nil {
				return err
			}

			return RenderResult(result)
		},
	}

	cmd.Flags().StringSliceVar(&types, "type", nil, "metadata type to retrieve (repeatable)")
	cmd.Flags().StringSliceVar(&members, "members", []string{"*"}, "members of each type")
	cmd.Flags().StringSliceVar(&packageNames, "package", nil, "named package to retrieve (repeatable)")
	cmd.Flags().StringVar(&out, "out", "retrieve.zip", "destination zip path")
	cmd.Flags().BoolVar(&singlePackage, "single-package", true, "treat the archive as a single package")
	cmd.Flags().DurationVar(&wait, "wait", 0, "poll until done, giving up after this duration")

	return cmd
}

// pollUntilDone repeatedly checks an async job until its first row reports
// done=true or the timeout elapses.
func pollUntilDone(ctx context.Context, timeout time.Duration, check func(context.Context) (*force.Result, error)) (*force.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(defaultPollInterval)
	defer ticker.Stop()

	for {
		result, err := check(ctx)
		if err != nil {
			return nil, err
		}

		if len(result.Rows) > 0 {
			if done, ok := result.Rows[0].GetString("done"); ok && done == "true" {
				return result, nil
			}

			if state, ok := result.Rows[0].GetString("status"); ok {
				_, _ = fmt.Fprintf(os.Stderr, "Job status: %s\n", state)
			}
		}

		select {
		case <-ctx.Done():
			return nil, ErrJobTimedOut
		case <-ticker.C:
		}
	}
}
