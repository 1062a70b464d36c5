package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/vox-go/internal/app"
	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	speakCmd := newSpeakCommand(container)

	root := &cobra.Command{
		Use:   "vox [text]",
		Short: "VOX - text-to-speech front-end",
		Long:  "VOX sends text to a configured speech backend, plays the audio, and keeps a local generation history.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			speakCmd.SetArgs(args)
			return speakCmd.ExecuteContext(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(speakCmd)
	root.AddCommand(commands.NewBackendsCommand(container))
	root.AddCommand(commands.NewVoicesCommand(container))
	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root, nil
}

func newSpeakCommand(container *app.Container) *cobra.Command {
	var (
		backend      string
		voice        string
		model        string
		format       string
		out          string
		design       string
		speed        float64
		exaggeration float64
		cfgWeight    float64
		stability    float64
		similarity   float64
		language     string
		instructions string
		seed         int64
		save         bool
		noPlay       bool
		debug        bool
		timeout      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "speak [text]",
		Short: "Synthesize speech from text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			if debug {
				container.Logger.SetVerbose(true)
			}

			req := domain.GenerateRequest{
				Context:         ctx,
				Text:            strings.Join(args, " "),
				BackendOverride: backend,
				Voice:           voice,
				Model:           model,
				Format:          format,
				VoiceDesign:     design != "",
				Params: domain.GenerationParams{
					Speed:            speed,
					Exaggeration:     exaggeration,
					CFGWeight:        cfgWeight,
					Stability:        stability,
					Similarity:       similarity,
					Language:         language,
					Instructions:     instructions,
					VoiceDescription: design,
				},
			}
			if cmd.Flags().Changed("seed") {
				req.Params.Seed = &seed
			}
			if cmd.Flags().Changed("save") {
				req.AutoSaveOverride = &save
			}

			spinner := NewSpinner(cmd.ErrOrStderr())
			spinner.Start("generating")
			result, err := container.GenerateService.Run(req)
			spinner.Stop()
			if err != nil {
				return err
			}

			RenderResult(cmd.OutOrStdout(), result)

			if out != "" {
				if err := os.WriteFile(out, result.Audio, domain.AudioFilePermissions); err != nil {
					return fmt.Errorf("write %s: %w", out, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Audio written to %s\n", out)
			}

			if noPlay || !container.Config.Playback.AutoPlay {
				return nil
			}
			return playResult(ctx, container, result)
		},
	}

	cmd.Flags().StringVarP(&backend, "backend", "b", "", "Backend to use (default from config)")
	cmd.Flags().StringVarP(&voice, "voice", "v", "", "Voice identifier (custom:<name> for a saved reference voice)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Model identifier for backends that have one")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Audio format (mp3, wav, opus)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Also write audio to this path")
	cmd.Flags().StringVar(&design, "design", "", "Natural-language voice description (voice design mode)")
	cmd.Flags().Float64Var(&speed, "speed", domain.DefaultSpeed, "Speaking speed")
	cmd.Flags().Float64Var(&exaggeration, "exaggeration", domain.DefaultExaggeration, "Emotion exaggeration (chatterbox)")
	cmd.Flags().Float64Var(&cfgWeight, "cfg-weight", domain.DefaultCFGWeight, "CFG weight (chatterbox)")
	cmd.Flags().Float64Var(&stability, "stability", domain.DefaultStability, "Voice stability (elevenlabs)")
	cmd.Flags().Float64Var(&similarity, "similarity", domain.DefaultSimilarity, "Similarity boost (elevenlabs)")
	cmd.Flags().StringVar(&language, "language", "", "Language code (kokoro)")
	cmd.Flags().StringVar(&instructions, "instructions", "", "Delivery instructions (openai)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Generation seed")
	cmd.Flags().BoolVar(&save, "save", true, "Save this generation to history (overrides auto_save)")
	cmd.Flags().BoolVar(&noPlay, "no-play", false, "Skip audio playback")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable verbose logging")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Override request timeout")

	return cmd
}

// playResult plays saved audio in place, or through a temp file when the
// generation was not persisted.
func playResult(ctx context.Context, container *app.Container, result domain.GenerateResult) error {
	if !container.Player.Enabled() {
		return nil
	}
	path := result.AudioFile
	if path == "" {
		tmp, err := os.CreateTemp("", "vox-*."+result.Meta.Format)
		if err != nil {
			return err
		}
		defer os.Remove(tmp.Name())
		if _, err := tmp.Write(result.Audio); err != nil {
			tmp.Close()
			return err
		}
		tmp.Close()
		path = tmp.Name()
	}
	return container.Player.Play(ctx, path)
}
