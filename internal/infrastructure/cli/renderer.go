package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/vox-go/internal/domain"
)

// RenderResult prints the generation outcome in a friendly, ASCII-only format.
func RenderResult(out io.Writer, result domain.GenerateResult) {
	meta := result.Meta
	fmt.Fprintf(out, "Generated %s of %s audio\n", humanize.Bytes(uint64(len(result.Audio))), meta.Format)
	fmt.Fprintf(out, "Backend: %s", meta.Backend)
	if meta.Model != "" {
		fmt.Fprintf(out, " (%s)", meta.Model)
	}
	fmt.Fprintln(out)
	if meta.Voice != "" {
		fmt.Fprintf(out, "Voice: %s\n", meta.Voice)
	}
	if len(meta.Params) > 0 {
		keys := make([]string, 0, len(meta.Params))
		for key := range meta.Params {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		fmt.Fprintln(out, "Parameters:")
		for _, key := range keys {
			fmt.Fprintf(out, "  %s: %s\n", key, meta.Params[key])
		}
	}
	if result.Entry != nil {
		fmt.Fprintf(out, "Saved to history as %s\n", result.Entry.ID)
	}
	if result.AudioFile != "" {
		fmt.Fprintf(out, "Audio file: %s\n", result.AudioFile)
	}
}
