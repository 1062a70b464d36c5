package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/vox-go/internal/app"
	"github.com/doeshing/vox-go/internal/domain"
)

// NewVoicesCommand creates the voices command with all subcommands
func NewVoicesCommand(container *app.Container) *cobra.Command {
	voicesCmd := &cobra.Command{
		Use:   "voices",
		Short: "Manage selectable and custom voices",
	}

	voicesCmd.AddCommand(
		newVoicesListCommand(container),
		newVoicesSaveCommand(container),
		newVoicesDeleteCommand(container),
	)

	return voicesCmd
}

func newVoicesListCommand(container *app.Container) *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List selectable voices for a backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listVoices(cmd.Context(), cmd.OutOrStdout(), container, backend)
		},
	}

	cmd.Flags().StringVarP(&backend, "backend", "b", "", "Backend to list voices for (default from config)")
	return cmd
}

func newVoicesSaveCommand(container *app.Container) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save <audio-file>",
		Short: "Save a reference audio file as a custom voice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := container.VoiceLibrary.Save(args[0], name)
			if err != nil {
				return fmt.Errorf("failed to save voice: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved custom voice to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Voice name (derived from the filename when omitted)")
	return cmd
}

func newVoicesDeleteCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a custom voice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.VoiceLibrary.Delete(args[0]); err != nil {
				return fmt.Errorf("failed to delete voice: %w", err)
			}
			return nil
		},
	}
}

// listVoices prints the voice option set for one backend, default marked.
func listVoices(ctx context.Context, out io.Writer, container *app.Container, backend string) error {
	if backend == "" {
		def, ok := container.Registry.DefaultBackend()
		if !ok {
			return fmt.Errorf("no backends available")
		}
		backend = def.Name
	}
	if !container.Config.HasBackend(backend) {
		return fmt.Errorf("backend %s not configured", backend)
	}

	voices := container.Registry.VoicesFor(ctx, domain.BackendKind(backend))
	fmt.Fprintf(out, "Voices for %s:\n", backend)
	for _, opt := range voices.Choices {
		marker := " "
		if opt.ID == voices.Default {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s (%s)\n", marker, opt.Label, opt.ID)
	}
	return nil
}
