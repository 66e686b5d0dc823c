package transcript

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/orbitmeetai/orbitmeet/internal/domain/entities"
)

// Normalizer converts transcript files of varied formats into one canonical
// text form. A failed file is terminal for that file only and must never
// abort a batch.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer instance
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

type processor func(path string) (string, error)

func (n *Normalizer) processors() map[string]processor {
	return map[string]processor{
		".txt":  processTxt,
		".docx": processDocx,
		".pdf":  processPdf,
		".srt":  processSrt,
		".vtt":  processVtt,
	}
}

// NormalizeFile detects the format by extension and returns unified text.
// Unsupported extensions return entities.ErrUnsupportedFormat.
func (n *Normalizer) NormalizeFile(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	proc, ok := n.processors()[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s", entities.ErrUnsupportedFormat, ext)
	}

	text, err := proc(path)
	if err != nil {
		return "", fmt.Errorf("failed to process %s file: %w", ext, err)
	}
	return CleanText(text), nil
}

// SupportedExtension reports whether the normalizer can handle the extension
// of the given filename.
func (n *Normalizer) SupportedExtension(filename string) bool {
	_, ok := n.processors()[strings.ToLower(filepath.Ext(filename))]
	return ok
}

var (
	multiNewline = regexp.MustCompile(`\n{3,}`)
	multiSpace   = regexp.MustCompile(`[ \t]+`)
)

// CleanText normalizes whitespace: NUL bytes removed, space/tab runs squeezed,
// every line trimmed, runs of 3+ newlines collapsed to a blank line, edges
// trimmed. Lines are trimmed before the newline collapse so whitespace-only
// lines cannot re-form longer runs afterwards; applying CleanText to its own
// output is a no-op.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\x00", "")
	text = strings.ReplaceAll(text, "\r", "")
	text = multiSpace.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = multiNewline.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

func processTxt(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

var docxTag = regexp.MustCompile(`<[^>]+>`)

// processDocx reads word/document.xml out of the docx zip container and
// strips the OOXML markup, turning paragraph ends into newlines.
func processDocx(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()

		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			return "", err
		}

		xmlText := buf.String()
		xmlText = strings.ReplaceAll(xmlText, "</w:p>", "\n")
		xmlText = strings.ReplaceAll(xmlText, "<w:br/>", "\n")
		xmlText = strings.ReplaceAll(xmlText, "<w:tab/>", " ")
		return docxTag.ReplaceAllString(xmlText, ""), nil
	}
	return "", fmt.Errorf("word/document.xml not found in %s", path)
}

func processPdf(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// processSrt drops sequence numbers and `-->` timestamp lines.
func processSrt(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var kept []string
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "-->") || isDigits(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n"), nil
}

// processVtt drops the WEBVTT header and `-->` timestamp lines.
func processVtt(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var kept []string
	for _, line := range strings.Split(string(b), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.Contains(trimmed, "-->") || strings.HasPrefix(trimmed, "WEBVTT") {
			continue
		}
		kept = append(kept, trimmed)
	}
	return strings.Join(kept, "\n"), nil
}
