// Package docsource opens documents into the transient page model the
// analysis engine consumes. It is the decoding collaborator: everything
// downstream sees only pages, text, cell grids, and signature fields.
package docsource

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/complyscan/complyscan/internal/document"
)

// Options control document opening behavior.
type Options struct {
	// PDFFallbackPdftotext enables the pdftotext -layout fallback when
	// the Go PDF library cannot extract text.
	PDFFallbackPdftotext bool
}

// OpenError reports that a document could not be opened or decoded.
// It is the fatal "document open failure" kind: there is no resource
// to release and no partial result.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open document %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// SupportedExtensions lists file extensions this service can analyze.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".txt":      true,
	".csv":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".docx":     true,
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Open decodes the document at path into ordered pages. All decoding
// happens here; the returned Document is fully in memory and its Close
// releases nothing further, so every exit path is safe.
func Open(path string, opts Options) (*document.Document, error) {
	var (
		pages []document.Page
		err   error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		pages, err = openPDF(path, opts.PDFFallbackPdftotext)
	case ".txt":
		pages, err = openText(path)
	case ".csv":
		pages, err = openCSV(path)
	case ".md", ".markdown":
		pages, err = openMarkdown(path)
	case ".html", ".htm":
		pages, err = openHTML(path)
	case ".docx":
		pages, err = openDOCX(path)
	default:
		err = fmt.Errorf("unsupported file extension: %s", ext)
	}
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	return document.New(path, pages, nil), nil
}
