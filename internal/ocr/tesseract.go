package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Tesseract shells out to the tesseract binary. This is the default engine;
// it needs no network and no API key, just the binary on PATH.
type Tesseract struct {
	binary string
	psm    string
}

// NewTesseract creates a tesseract-backed engine. psm is passed through as
// the page segmentation mode; "6" (uniform block of text) works well for
// phone screenshots.
func NewTesseract(psm string) *Tesseract {
	if psm == "" {
		psm = "6"
	}
	return &Tesseract{binary: "tesseract", psm: psm}
}

// ExtractText writes the image to a temp file and runs tesseract on it. A
// missing binary maps to ErrUnavailable, a non-zero exit to ErrFailed with
// the stderr output attached.
func (t *Tesseract) ExtractText(ctx context.Context, image []byte) (string, error) {
	tmpDir, err := os.MkdirTemp("", "charge-tracker-ocr")
	if err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	imagePath := filepath.Join(tmpDir, "screenshot.png")
	if err := os.WriteFile(imagePath, image, 0644); err != nil {
		return "", fmt.Errorf("writing temp image: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.binary, imagePath, "stdout", "--psm", t.psm)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if _, lookErr := exec.LookPath(t.binary); lookErr != nil {
			return "", fmt.Errorf("%w: tesseract binary not found, install it (e.g. `brew install tesseract`)", ErrUnavailable)
		}
		return "", fmt.Errorf("%w: %v: %s", ErrFailed, err, stderr.String())
	}
	return stdout.String(), nil
}

func (t *Tesseract) Name() string { return "tesseract" }

func (t *Tesseract) Close() error { return nil }
