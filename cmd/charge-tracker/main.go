package main

import (
	"bufio"
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/zombor/charge-tracker/internal/extract"
	"github.com/zombor/charge-tracker/internal/ingest"
	"github.com/zombor/charge-tracker/internal/ledger"
	"github.com/zombor/charge-tracker/internal/ocr"
	"github.com/zombor/charge-tracker/internal/plugin"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("charge-tracker")
	var (
		output      = fs.StringLong("output", "charges.csv", "CSV ledger to create or merge into")
		appendRows  = fs.BoolLong("append", "Merge rows into the existing CSV instead of overwriting it")
		psm         = fs.StringLong("psm", "6", "Tesseract page segmentation mode (passed through to `tesseract --psm`)")
		textOnly    = fs.BoolLong("text-only", "Print the OCR text for debugging instead of writing CSV")
		pluginName  = fs.StringLong("plugin", "", "Force a specific plugin by name (e.g. 'fordpass') instead of auto-detecting")
		engineType  = fs.StringLong("engine", "tesseract", "OCR engine: 'tesseract', 'gemini' or 'ollama'")
		geminiKey   = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model name")
		ollamaURL   = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel = fs.StringLong("ollama-model", "llava", "Ollama model name (e.g., llava, llava-phi3, bakllava, qwen2-vl)")
		cachePath   = fs.StringLong("cache", "", "BoltDB file caching OCR text per screenshot (empty disables caching)")
		showVersion = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("CHARGE_TRACKER"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	inputs := fs.GetArgs()
	if len(inputs) == 0 {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintln(os.Stderr, "error: at least one screenshot or directory argument is required")
		os.Exit(1)
	}

	images, err := ingest.CollectImages(inputs)
	if err != nil {
		slog.Error("Failed to collect screenshots", "error", err)
		os.Exit(1)
	}
	if len(images) == 0 {
		slog.Error("No screenshots found in the provided paths")
		os.Exit(1)
	}

	// Initialize OCR engine based on type
	var engine ocr.Engine
	switch *engineType {
	case "tesseract":
		engine = ocr.NewTesseract(*psm)
	case "gemini":
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Gemini engine...", "model", *geminiModel)
		engine, err = ocr.NewGemini(apiKey, *geminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini", "error", err)
			os.Exit(1)
		}
	case "ollama":
		slog.Info("Initializing Ollama engine...", "url", *ollamaURL, "model", *ollamaModel)
		engine, err = ocr.NewOllama(*ollamaURL, *ollamaModel)
		if err != nil {
			slog.Error("Failed to initialize Ollama", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("Invalid OCR engine", "engine", *engineType, "valid", "tesseract, gemini or ollama")
		os.Exit(1)
	}
	defer engine.Close()

	if *cachePath != "" {
		cache, err := ocr.OpenCache(*cachePath)
		if err != nil {
			slog.Error("Failed to open OCR cache", "path", *cachePath, "error", err)
			os.Exit(1)
		}
		defer cache.Close()
		engine = ocr.WithCache(engine, cache)
	}

	plugins := plugin.Registry()
	var forced plugin.Plugin
	if *pluginName != "" {
		var ok bool
		forced, ok = plugin.ByName(*pluginName, plugins)
		if !ok {
			names := make([]string, 0, len(plugins))
			for _, p := range plugins {
				names = append(names, p.Name())
			}
			slog.Error("Unknown plugin", "plugin", *pluginName, "available", strings.Join(names, ", "))
			os.Exit(1)
		}
	}

	ctx := context.Background()
	var rows []extract.Record
	failures := 0
	for _, image := range images {
		text, err := screenshotText(ctx, engine, image)
		if err != nil {
			// A bad screenshot shouldn't sink the whole batch.
			slog.Error("Skipping screenshot", "image", image, "error", err)
			failures++
			continue
		}

		if *textOnly {
			fmt.Printf("--- OCR output for %s ---\n%s\n", image, text)
			continue
		}

		selected := forced
		if selected == nil {
			var ok bool
			selected, ok = plugin.Select(text, plugins)
			if !ok {
				selected = promptForPlugin(plugins, image)
			}
		}

		slog.Info("Parsed screenshot", "image", image, "plugin", selected.Name())
		rows = append(rows, selected.Parse(text))
	}

	if *textOnly {
		if failures > 0 {
			os.Exit(1)
		}
		return
	}
	if len(rows) == 0 {
		slog.Error("No data rows produced")
		os.Exit(1)
	}

	added, err := ledger.New(*output).Write(rows, *appendRows)
	if err != nil {
		slog.Error("Failed to write ledger", "output", *output, "error", err)
		os.Exit(1)
	}
	slog.Info("Ledger updated", "output", *output, "added", added, "skipped_images", failures)
	if failures > 0 {
		os.Exit(1)
	}
}

// screenshotText reads one screenshot, normalizes it to PNG and OCRs it.
func screenshotText(ctx context.Context, engine ocr.Engine, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading screenshot: %w", err)
	}
	prepared, err := ocr.PrepareImage(data, ocr.DetectContentType(path, data))
	if err != nil {
		return "", fmt.Errorf("preparing screenshot: %w", err)
	}
	text, err := engine.ExtractText(ctx, prepared)
	if err != nil {
		return "", fmt.Errorf("extracting text: %w", err)
	}
	return text, nil
}

// promptForPlugin asks the user to pick a plugin when detection is
// ambiguous or came up empty.
func promptForPlugin(plugins []plugin.Plugin, image string) plugin.Plugin {
	fmt.Printf("Could not determine the charging app for %s.\n", image)
	for idx, p := range plugins {
		fmt.Printf("%d. %s\n", idx+1, p.DisplayName())
	}
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Select the correct app by number: ")
		if !scanner.Scan() {
			slog.Error("No plugin selected")
			os.Exit(1)
		}
		choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Println("Please enter a numeric choice from the list.")
			continue
		}
		if choice >= 1 && choice <= len(plugins) {
			return plugins[choice-1]
		}
		fmt.Println("Choice out of range; try again.")
	}
}
