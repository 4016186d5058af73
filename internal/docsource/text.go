package docsource

import (
	"os"

	"github.com/complyscan/complyscan/internal/document"
)

// openText reads a plain-text document. Form feeds separate pages,
// mirroring the PDF extraction output, which makes .txt files a direct
// stand-in for extracted PDFs.
func openText(path string) ([]document.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return pagesFromText(string(data)), nil
}
