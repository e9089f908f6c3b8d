package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"formset/internal/report"
	"formset/pkg/logging"
)

// timestampLayout keeps generated file names sortable and shell-safe.
const timestampLayout = "2006-01-02-15-04-05"

// FileWriter persists narrative results under
// {root}/{outbox}/{report}/{sanitized}-{timestamp}-{kind}.{ext}. This layout
// is an on-disk contract; external tooling globs these files.
type FileWriter struct {
	// Root is the output root directory.
	Root string
	// Outbox is the subdirectory under Root.
	Outbox string

	// now is swappable for deterministic tests.
	now func() time.Time
}

// NewFileWriter creates a writer rooted at root/outbox.
func NewFileWriter(root, outbox string) *FileWriter {
	return &FileWriter{Root: root, Outbox: outbox, now: time.Now}
}

// Write persists content as UTF-8 text and returns the absolute path.
// Parent directories are created as needed.
func (w *FileWriter) Write(reportName string, kind report.Kind, content string) (string, error) {
	dir := filepath.Join(w.Root, w.Outbox, reportName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	name := fmt.Sprintf("%s-%s-%s.%s",
		SanitizeName(reportName), w.now().Format(timestampLayout), kind, ExtensionFor(kind))
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing report file %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	logging.Info("sink", "Wrote %s result to %s", kind, abs)
	return abs, nil
}

// ExtensionFor maps an output kind to a file extension: markdown-family
// kinds to md, html to html, structured kinds to json, everything else txt.
func ExtensionFor(kind report.Kind) string {
	switch kind {
	case report.KindReport, report.KindMermaid:
		return "md"
	case report.KindHTML:
		return "html"
	case report.KindDict, report.KindJSON, report.KindAll:
		return "json"
	default:
		return "txt"
	}
}

// SanitizeName keeps alphanumerics and "-_+. ", then replaces spaces with
// underscores.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '+' || r == '.' || r == ' ':
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(b.String(), " ", "_")
}
