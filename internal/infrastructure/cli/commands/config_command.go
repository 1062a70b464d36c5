package commands

import (
	"fmt"
	"strconv"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/vox-go/internal/app"
	"github.com/doeshing/vox-go/internal/domain"
)

// NewConfigCommand creates the config command with all subcommands
func NewConfigCommand(container *app.Container) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit configuration",
	}

	configCmd.AddCommand(
		newConfigShowCommand(container),
		newConfigPathCommand(container),
		newConfigSetCommand(container),
		newConfigValidateCommand(container),
	)

	return configCmd
}

func newConfigShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			raw, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(raw))
			return nil
		},
	}
}

func newConfigPathCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), container.ConfigLoader.Path())
			return nil
		},
	}
}

func newConfigSetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value. Supported keys:
  default-backend   preferred backend name
  auto-save         true/false, save every generation to history
  format            default audio format (mp3, wav, opus)
  timeout           synthesis timeout in seconds
  history-storage   json or sqlite
  player            playback binary (empty to auto-detect)
  auto-play         true/false, play audio after generation`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			before := cfg

			if err := applyConfigValue(&cfg, args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			if err := container.ConfigLoader.Save(cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			if diff := cmp.Diff(before, cfg); diff != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Updated config (-old +new):\n%s", diff)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "No change.")
			}
			return nil
		},
	}
}

func newConfigValidateCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid.")
			return nil
		},
	}
}

func applyConfigValue(cfg *domain.Config, key, value string) error {
	switch key {
	case "default-backend":
		if value != "" && !cfg.HasBackend(value) {
			return fmt.Errorf("backend %s not configured", value)
		}
		cfg.Preferences.DefaultBackend = value
	case "auto-save":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("auto-save must be true or false")
		}
		cfg.Preferences.AutoSave = parsed
	case "format":
		cfg.Preferences.Format = value
	case "timeout":
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 0 {
			return fmt.Errorf("timeout must be a non-negative integer")
		}
		cfg.Preferences.TimeoutSeconds = parsed
	case "history-storage":
		cfg.History.Storage = value
	case "player":
		cfg.Playback.Player = value
	case "auto-play":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("auto-play must be true or false")
		}
		cfg.Playback.AutoPlay = parsed
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}
