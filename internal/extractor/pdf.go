// Package extractor pulls per-page text out of M-Pesa statement PDFs.
//
// Safaricom statements are password protected; the password is the one
// the customer received with the statement (usually a national ID number).
package extractor

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrInvalidPassword is returned when the statement is encrypted and the
	// password does not open it.
	ErrInvalidPassword = errors.New("statement PDF is encrypted and the password is missing or wrong")
	// ErrNoReadableText is returned when no method yields readable text.
	ErrNoReadableText = errors.New("no readable text could be extracted from the PDF; the file may be scanned or damaged")
)

// ExtractText returns the text of each page of the PDF in r. Rows are
// rebuilt from text positions so that each statement row ends up on its
// own line. When the Go library cannot produce readable text, the
// pdftotext command is tried if it is installed.
func ExtractText(r io.ReaderAt, size int64, password string) ([]string, error) {
	pages, libErr := extractWithLibrary(r, size, password)
	if libErr == nil && isReadableText(pages) {
		return pages, nil
	}

	popplerPages, popplerErr := extractWithPdftotext(r, size, password)
	if popplerErr == nil && isReadableText(popplerPages) {
		return popplerPages, nil
	}

	switch {
	case errors.Is(libErr, ErrInvalidPassword), errors.Is(popplerErr, ErrInvalidPassword):
		return nil, ErrInvalidPassword
	case libErr != nil:
		return nil, fmt.Errorf("%w: %v", ErrNoReadableText, libErr)
	}
	return nil, ErrNoReadableText
}

// extractWithLibrary uses the ledongthuc/pdf library with several methods,
// keeping the first one whose output reads like a statement.
func extractWithLibrary(f io.ReaderAt, size int64, password string) (pages []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("PDF library crashed: %v", rec)
		}
	}()

	r, err := pdf.NewReaderEncrypted(f, size, oneShot(password))
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return nil, ErrInvalidPassword
		}
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	for _, method := range []func(*pdf.Reader, int) []string{extractByRow, extractByContent, extractByPagePlainText} {
		pages = method(r, numPages)
		if isReadableText(pages) {
			return pages, nil
		}
	}

	if plain := extractByReaderPlainText(r); isReadableText([]string{plain}) {
		return []string{plain}, nil
	}
	return pages, nil
}

// oneShot hands the password to the library once. The library keeps asking
// until it gets an empty string.
func oneShot(password string) func() string {
	used := false
	return func() string {
		if used {
			return ""
		}
		used = true
		return password
	}
}

// extractByRow uses GetTextByRow, which works for most statements.
func extractByRow(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// columnGap is the horizontal distance, in points, treated as a column break.
const columnGap = 15

// extractByContent groups text objects by Y coordinate into rows and
// orders each row by X.
func extractByContent(r *pdf.Reader, numPages int) []string {
	type textItem struct {
		x float64
		s string
	}

	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if len(content.Text) == 0 {
			continue
		}

		rowMap := make(map[int][]textItem)
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			y := int(math.Round(t.Y))
			rowMap[y] = append(rowMap[y], textItem{x: t.X, s: t.S})
		}

		// PDF Y grows upwards
		ys := make([]int, 0, len(rowMap))
		for y := range rowMap {
			ys = append(ys, y)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(ys)))

		var lines []string
		for _, y := range ys {
			items := rowMap[y]
			sort.Slice(items, func(a, b int) bool { return items[a].x < items[b].x })

			var sb strings.Builder
			for j, item := range items {
				if j > 0 && item.x-items[j-1].x > columnGap {
					sb.WriteString("  ")
				}
				sb.WriteString(item.s)
			}
			if line := strings.TrimSpace(sb.String()); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

func extractByPagePlainText(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		fonts := make(map[string]*pdf.Font)
		for _, name := range page.Fonts() {
			f := page.Font(name)
			fonts[name] = &f
		}
		text, err := page.GetPlainText(fonts)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}
	return pages
}

func extractByReaderPlainText(r *pdf.Reader) string {
	reader, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
