package comprovante

import "time"

// DocumentType identifies the kind of payment receipt a PDF contains.
type DocumentType string

const (
	TypeBoleto  DocumentType = "Boleto"
	TypeTED     DocumentType = "TED"
	TypePIX     DocumentType = "PIX"
	TypeUnknown DocumentType = "Desconhecido"
)

// Status is the per-file outcome of a processing run.
type Status string

const (
	// StatusRenamed means date and payee were extracted and the file was
	// renamed and included in the output archive.
	StatusRenamed Status = "renamed"
	// StatusRenameFailed means extraction succeeded but the filesystem
	// rename failed; the file is not in the output archive.
	StatusRenameFailed Status = "rename_failed"
	// StatusFieldsMissing means date or payee could not be extracted.
	StatusFieldsMissing Status = "fields_missing"
)

// Placeholders used in records when a value is absent.
const (
	placeholderName  = "-"
	placeholderValue = "N/A"
)

// Extraction holds the fields pulled from a receipt's first page.
// Empty Date or Payee means the field was not found.
type Extraction struct {
	Date  string // DD-MM-YYYY
	Payee string
	Type  DocumentType
}

// Record is the per-file result reported for a run.
type Record struct {
	OriginalName string       `json:"original_name"`
	NewName      string       `json:"new_name"`
	Status       Status       `json:"status"`
	Error        string       `json:"error,omitempty"`
	Type         DocumentType `json:"type"`
	Date         string       `json:"date"`
	Payee        string       `json:"payee"`
}

// Run represents one processed archive with its per-file records
type Run struct {
	ID          string    `json:"id"`
	ArchiveName string    `json:"archive_name"`
	OutputName  string    `json:"output_name,omitempty"` // download filename, empty when nothing was renamed
	Filename    string    `json:"filename,omitempty"`    // stored path of the output archive
	Records     []Record  `json:"records"`
	CreatedAt   time.Time `json:"created_at"`
}

// Renamed returns the number of records that made it into the output archive.
func (r *Run) Renamed() int {
	n := 0
	for _, rec := range r.Records {
		if rec.Status == StatusRenamed {
			n++
		}
	}
	return n
}
