package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"text/template"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/zombor/charge-tracker/internal/ocr"
)

// keywordMinLength filters out short glue words when seeding Detect.
const keywordMinLength = 4

var keywordToken = regexp.MustCompile(fmt.Sprintf(`[A-Za-z]{%d,}`, keywordMinLength))

var pluginTemplate = template.Must(template.New("plugin").Parse(`package plugin

import (
	"strings"

	"github.com/zombor/charge-tracker/internal/extract"
)

// {{.TypeName}} parses session screenshots from the {{.DisplayName}} app.
type {{.TypeName}} struct{}

func (p *{{.TypeName}}) Name() string        { return "{{.Name}}" }
func (p *{{.TypeName}}) DisplayName() string { return "{{.DisplayName}}" }

func (p *{{.TypeName}}) Detect(text string) float64 {
	lowered := strings.ToLower(text)
	score := 0.0
	for _, token := range []string{ {{- range $i, $kw := .Keywords}}{{if $i}}, {{end}}"{{$kw}}"{{end -}} } {
		if strings.Contains(lowered, token) {
			score += 1.0
		}
	}
	return score
}

func (p *{{.TypeName}}) Parse(text string) extract.Record {
	// TODO: pick the extract.Layout matching {{.DisplayName}} screenshots
	// and register the plugin in the builtin list.
	return extract.Assemble(text, extract.Layout{})
}
`))

type pluginData struct {
	TypeName    string
	Name        string
	DisplayName string
	Keywords    []string
}

// slugToTypeName turns "electrify_america" into "ElectrifyAmerica".
func slugToTypeName(slug string) string {
	var b strings.Builder
	for _, part := range regexp.MustCompile(`[_\-\s]+`).Split(slug, -1) {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(strings.ToLower(part[1:]))
	}
	return b.String()
}

// extractKeywords returns the most frequent words of the OCR text, longest
// run of repeats first, preserving first-seen order between ties.
func extractKeywords(text string, limit int) []string {
	tokens := keywordToken.FindAllString(strings.ToLower(text), -1)
	counts := make(map[string]int)
	var order []string
	for _, token := range tokens {
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}
	return order
}

func main() {
	fs := ff.NewFlagSet("plugin-gen")
	var (
		displayName = fs.StringLong("display-name", "", "Human-friendly app name; defaults to the title-cased slug")
		output      = fs.StringLong("output", "", "Output plugin file path; defaults to internal/plugin/<slug>.go")
		psm         = fs.StringLong("psm", "6", "Tesseract page segmentation mode")
		keywords    = fs.IntLong("keywords", 6, "Maximum number of keywords to seed into Detect")
		force       = fs.BoolLong("force", "Overwrite an existing plugin file if present")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("CHARGE_TRACKER"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	args := fs.GetArgs()
	if len(args) != 2 {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintln(os.Stderr, "error: usage: plugin-gen [flags] <slug> <screenshot>")
		os.Exit(1)
	}
	slug, screenshot := args[0], args[1]

	outPath := *output
	if outPath == "" {
		outPath = filepath.Join("internal", "plugin", slug+".go")
	}
	if _, err := os.Stat(outPath); err == nil && !*force {
		slog.Error("Output file already exists; use --force to overwrite", "output", outPath)
		os.Exit(1)
	}

	data, err := os.ReadFile(screenshot)
	if err != nil {
		slog.Error("Failed to read screenshot", "screenshot", screenshot, "error", err)
		os.Exit(1)
	}
	prepared, err := ocr.PrepareImage(data, ocr.DetectContentType(screenshot, data))
	if err != nil {
		slog.Error("Failed to prepare screenshot", "screenshot", screenshot, "error", err)
		os.Exit(1)
	}

	engine := ocr.NewTesseract(*psm)
	defer engine.Close()
	text, err := engine.ExtractText(context.Background(), prepared)
	if err != nil {
		slog.Error("OCR failed", "screenshot", screenshot, "error", err)
		os.Exit(1)
	}

	display := *displayName
	if display == "" {
		display = slugToTypeName(slug)
	}

	var source strings.Builder
	err = pluginTemplate.Execute(&source, pluginData{
		TypeName:    slugToTypeName(slug),
		Name:        slug,
		DisplayName: display,
		Keywords:    extractKeywords(text, *keywords),
	})
	if err != nil {
		slog.Error("Failed to render plugin scaffold", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		slog.Error("Failed to create output directory", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, []byte(source.String()), 0644); err != nil {
		slog.Error("Failed to write plugin scaffold", "output", outPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Generated plugin scaffold", "output", outPath)
}
