package extracting

// TextExtractor defines the interface for pulling text out of PDF documents.
type TextExtractor interface {
	// ExtractFirstPageText returns the text content of the document's
	// first page. Receipts are single-page; anything after page one is
	// never inspected.
	ExtractFirstPageText(pdfData []byte) (string, error)
	// Close closes the extractor and releases resources
	Close() error
}
