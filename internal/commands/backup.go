package commands

import (
	"github.com/spf13/cobra"

	"github.com/tallygate-dev/tallygate/internal/model"
	"github.com/tallygate-dev/tallygate/internal/reports"
)

func newBackupCommand(opts *rootOptions) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Back up company data to a path on the engine's machine",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCreate(cmd, opts, func(svc *reports.Service) (any, error) {
				return svc.Backup(cmd.Context(), model.BackupRequest{Path: path})
			})
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "backup destination path (required)")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}
