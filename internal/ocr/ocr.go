package ocr

import (
	"context"
	"errors"
	"strings"
)

// Sentinel conditions for the only hard failures in the pipeline. A caller
// processing a batch should surface the cause for the affected image and
// keep going.
var (
	// ErrUnavailable means the engine cannot run at all (missing binary,
	// unreachable service).
	ErrUnavailable = errors.New("ocr engine unavailable")
	// ErrFailed means the engine ran but could not produce text.
	ErrFailed = errors.New("ocr failed")
)

// Engine turns a prepared PNG screenshot into plain multi-line text. The
// text is opaque to the engine: lines may be missing, merged, or reordered,
// and downstream extraction tolerates all of that.
type Engine interface {
	// ExtractText OCRs the image and returns UTF-8 text, lines separated by "\n".
	ExtractText(ctx context.Context, image []byte) (string, error)
	// Name identifies the engine, e.g. for cache keys.
	Name() string
	// Close releases engine resources.
	Close() error
}

// transcribePrompt is the shared prompt used by the LLM-backed engines. The
// downstream parser is label-anchored and line-oriented, so the model is
// asked for a faithful transcription rather than interpretation.
const transcribePrompt = `You are transcribing a screenshot from an EV charging mobile app.

Read ALL visible text in the image, top to bottom, and return it as plain text:
- One output line per visual line of the screen
- Keep labels and their values exactly as shown (e.g. "Energy added 32.5 kWh")
- Keep dates, times, percentages, and dollar amounts verbatim
- Do not summarize, reorder, translate, or annotate anything
- Do not use markdown code blocks

Return only the transcribed text.`

// normalizeTranscript strips the markdown fences that vision models
// sometimes wrap their output in despite instructions.
func normalizeTranscript(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
