package extracting

import (
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// Fitz implements the TextExtractor interface using MuPDF via go-fitz
type Fitz struct{}

// NewFitz creates a new Fitz extractor
func NewFitz() *Fitz {
	return &Fitz{}
}

// ExtractFirstPageText extracts the text of the first page of a PDF
func (f *Fitz) ExtractFirstPageText(pdfData []byte) (string, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	text, err := doc.Text(0)
	if err != nil {
		return "", fmt.Errorf("extracting page text: %w", err)
	}

	return text, nil
}

// Close closes the extractor (no-op, documents are opened per call)
func (f *Fitz) Close() error {
	return nil
}
