// Package player plays generated audio through a local player binary.
package player

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/doeshing/vox-go/internal/ports"
)

// candidate player binaries, tried in order.
var candidates = []string{"afplay", "mpv", "ffplay", "aplay", "play"}

// extra arguments some players need to run quietly without a window.
var playerArgs = map[string][]string{
	"mpv":    {"--no-video", "--really-quiet"},
	"ffplay": {"-nodisp", "-autoexit", "-loglevel", "quiet"},
}

// LocalPlayer shells out to whatever audio player the host offers.
type LocalPlayer struct {
	binary string
}

// NewLocalPlayer detects an available player binary. An explicit binary from
// configuration wins over auto-detection.
func NewLocalPlayer(binary string) *LocalPlayer {
	if binary != "" {
		if _, err := exec.LookPath(binary); err == nil {
			return &LocalPlayer{binary: binary}
		}
		return &LocalPlayer{}
	}
	for _, candidate := range candidates {
		if _, err := exec.LookPath(candidate); err == nil {
			return &LocalPlayer{binary: candidate}
		}
	}
	return &LocalPlayer{}
}

// Enabled reports whether a player binary was found.
func (p *LocalPlayer) Enabled() bool {
	return p.binary != ""
}

// Play implements ports.AudioPlayer.
func (p *LocalPlayer) Play(ctx context.Context, path string) error {
	if !p.Enabled() {
		return fmt.Errorf("no audio player available")
	}
	args := append(append([]string{}, playerArgs[p.binary]...), path)
	cmd := exec.CommandContext(ctx, p.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("%s: %s", p.binary, stderr.String())
		}
		return fmt.Errorf("%s: %w", p.binary, err)
	}
	return nil
}

var _ ports.AudioPlayer = (*LocalPlayer)(nil)
