package docsource

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/complyscan/complyscan/internal/document"
	pdflib "github.com/ledongthuc/pdf"
)

// openPDF extracts page text with the Go library, falling back to
// pdftotext when enabled. Signature form fields are recovered from the
// raw PDF objects.
func openPDF(path string, fallback bool) ([]document.Page, error) {
	text, err := extractPDFText(path)
	if err != nil && fallback {
		text, err = extractPdftotext(path)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	pages := pagesFromText(text)

	// ledongthuc/pdf exposes no AcroForm dictionary, so signature
	// fields come from scanning the raw object stream. Page
	// attribution is not recoverable that way; fields land on page 1.
	if sigs := scanSignatureFields(path); len(sigs) > 0 && len(pages) > 0 {
		pages[0].SignatureFields = sigs
	}

	return pages, nil
}

func extractPDFText(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if i > 1 {
			buf.WriteString("\f") // Form feed as page separator.
		}
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

func extractPdftotext(path string) (string, error) {
	// -layout keeps column alignment so grids survive extraction.
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}

var (
	sigFieldMarker = regexp.MustCompile(`/FT\s*/Sig`)
	sigFieldName   = regexp.MustCompile(`/T\s*\(([^)]*)\)`)
)

// scanSignatureFields finds /FT /Sig field dictionaries in the raw file
// and pulls the nearby /T partial field name. Best effort: a failure to
// read or match simply yields no fields.
func scanSignatureFields(path string) []document.SignatureField {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var fields []document.SignatureField
	for _, loc := range sigFieldMarker.FindAllIndex(data, -1) {
		start := loc[0] - 300
		if start < 0 {
			start = 0
		}
		end := loc[1] + 300
		if end > len(data) {
			end = len(data)
		}
		name := ""
		if m := sigFieldName.FindSubmatch(data[start:end]); m != nil {
			name = string(m[1])
		}
		fields = append(fields, document.SignatureField{
			FieldType: "Sig",
			FieldName: name,
		})
	}
	return fields
}
