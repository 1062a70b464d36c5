package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/vox-go/internal/app"
	"github.com/doeshing/vox-go/internal/domain"
)

// NewBackendsCommand creates the backends command with all subcommands
func NewBackendsCommand(container *app.Container) *cobra.Command {
	backendsCmd := &cobra.Command{
		Use:   "backends",
		Short: "Inspect available speech backends",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listBackends(cmd.OutOrStdout(), container)
		},
	}

	backendsCmd.AddCommand(newBackendsModelsCommand(container))
	return backendsCmd
}

func newBackendsModelsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "models <backend>",
		Short: "List selectable models for a backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return listModels(cmd.OutOrStdout(), container, args[0])
		},
	}
}

// listBackends prints the detected backends; the first one is the default.
func listBackends(out io.Writer, container *app.Container) error {
	available := container.Registry.DetectAvailable()
	if len(available) == 0 {
		fmt.Fprintln(out, "No backends available. Run 'vox doctor' for details.")
		return nil
	}
	for i, opt := range available {
		marker := " "
		if i == 0 {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s (%s)\n", marker, opt.Label, opt.ID)
	}
	return nil
}

func listModels(out io.Writer, container *app.Container, backend string) error {
	if !container.Config.HasBackend(backend) {
		return fmt.Errorf("backend %s not configured", backend)
	}
	models := container.Registry.ModelsFor(domain.BackendKind(backend))
	if len(models.Choices) == 0 {
		fmt.Fprintf(out, "%s has no model selection.\n", backend)
		return nil
	}
	for _, opt := range models.Choices {
		marker := " "
		if opt.ID == models.Default {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s (%s)\n", marker, opt.Label, opt.ID)
	}
	return nil
}
