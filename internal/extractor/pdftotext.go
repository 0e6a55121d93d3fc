package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// pdftotextPath is looked up on PATH.
var pdftotextPath = "pdftotext"

// extractWithPdftotext runs poppler's pdftotext on a temporary copy of the
// PDF. Pages are split on the form feeds pdftotext emits between pages.
func extractWithPdftotext(r io.ReaderAt, size int64, password string) ([]string, error) {
	bin, err := exec.LookPath(pdftotextPath)
	if err != nil {
		return nil, fmt.Errorf("pdftotext not available: %w", err)
	}

	tmp, err := os.CreateTemp("", "mpesa-statement-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, io.NewSectionReader(r, 0, size)); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}

	args := []string{"-layout"}
	if password != "" {
		args = append(args, "-upw", password)
	}
	args = append(args, tmp.Name(), "-")

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if strings.Contains(strings.ToLower(stderr.String()), "password") {
			return nil, ErrInvalidPassword
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("pdftotext failed: %s", strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("pdftotext failed: %w", err)
	}

	return splitPages(stdout.String()), nil
}

func splitPages(text string) []string {
	var pages []string
	for _, p := range strings.Split(text, "\f") {
		if p = strings.TrimSpace(p); p != "" {
			pages = append(pages, p)
		}
	}
	return pages
}
