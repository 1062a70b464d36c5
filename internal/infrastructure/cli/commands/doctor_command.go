package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/vox-go/internal/app"
	"github.com/doeshing/vox-go/internal/domain"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the local environment and configured backends",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := container.DoctorService.Run(cmd.Context())
			out := cmd.OutOrStdout()
			for _, check := range report.Checks {
				fmt.Fprintf(out, "[%-4s] %s: %s\n", check.Status, check.Name, check.Details)
			}
			if err != nil {
				return err
			}
			if hasFailure(report) {
				return fmt.Errorf("some checks failed")
			}
			return nil
		},
	}
}

func hasFailure(report domain.HealthReport) bool {
	for _, check := range report.Checks {
		if check.Status == domain.HealthFail {
			return true
		}
	}
	return false
}
