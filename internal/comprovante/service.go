package comprovante

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/rezende/comprovantes/internal/extracting"
)

// ErrNoPDFs is returned when the uploaded archive contains no PDF files.
var ErrNoPDFs = errors.New("no PDF files found in archive")

// Progress is an optional observer invoked after each processed file. It is
// reporting only and never affects outcomes.
type Progress func(done, total int, current string)

// IDGenerator generates unique IDs for runs
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultIDGenerator generates random UUIDs
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return uuid.NewString()
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service processes receipt archives and manages run history
type Service struct {
	db          DB
	extractor   extracting.TextExtractor
	storage     Storage
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time source
func NewService(db DB, extractor extracting.TextExtractor, storage Storage) *Service {
	return &Service{
		db:          db,
		extractor:   extractor,
		storage:     storage,
		idGenerator: &defaultIDGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, extractor extracting.TextExtractor, storage Storage, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		extractor:   extractor,
		storage:     storage,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// ProcessArchive unpacks the uploaded ZIP, renames every receipt whose date
// and payee could be extracted, packs the renamed files into a new archive
// and saves the run. Returns ErrNoPDFs when the archive holds no PDF files.
//
// Individual file failures (unreadable PDF, failed rename) are recorded and
// never abort the batch.
func (s *Service) ProcessArchive(archiveName string, data []byte, progress Progress) (*Run, error) {
	workDir, err := os.MkdirTemp("", "comprovantes-*")
	if err != nil {
		return nil, fmt.Errorf("creating work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	if err := unpackArchive(data, workDir); err != nil {
		return nil, fmt.Errorf("unpacking archive: %w", err)
	}

	pdfs, err := findPDFs(workDir)
	if err != nil {
		return nil, fmt.Errorf("listing PDFs: %w", err)
	}
	if len(pdfs) == 0 {
		return nil, ErrNoPDFs
	}

	records := make([]Record, 0, len(pdfs))
	var renamed []string
	for i, path := range pdfs {
		records = append(records, s.processFile(workDir, path, &renamed))
		if progress != nil {
			progress(i+1, len(pdfs), filepath.Base(path))
		}
	}

	now := s.timeSource.Now()
	run := &Run{
		ID:          s.idGenerator.Generate(),
		ArchiveName: archiveName,
		Records:     records,
		CreatedAt:   now,
	}

	if len(renamed) > 0 {
		output, err := packArchive(renamed)
		if err != nil {
			return nil, fmt.Errorf("packing output archive: %w", err)
		}

		run.OutputName = fmt.Sprintf("comprovantes_renomeados_%s.zip", now.Format("20060102_150405"))
		savedPath, err := s.storage.Save(fmt.Sprintf("%s_%s", run.ID, run.OutputName), output)
		if err != nil {
			return nil, fmt.Errorf("saving output archive: %w", err)
		}
		run.Filename = savedPath
	}

	if err := s.db.SaveRun(run); err != nil {
		// Clean up the stored archive if the database save fails
		if run.Filename != "" {
			s.storage.Delete(run.Filename)
		}
		return nil, fmt.Errorf("saving run to database: %w", err)
	}

	return run, nil
}

// processFile classifies a single PDF and renames it inside workDir when both
// fields were extracted. Successfully renamed paths are appended to renamed.
func (s *Service) processFile(workDir, path string, renamed *[]string) Record {
	name := filepath.Base(path)

	data, err := os.ReadFile(path)
	var ext Extraction
	if err == nil {
		var text string
		text, err = s.extractor.ExtractFirstPageText(data)
		if err == nil {
			ext = Classify(text)
		}
	}
	if err != nil {
		slog.Error("Failed to read receipt", "file", name, "error", err)
		return Record{
			OriginalName: name,
			NewName:      placeholderName,
			Status:       StatusFieldsMissing,
			Error:        err.Error(),
			Type:         TypeUnknown,
			Date:         placeholderValue,
			Payee:        placeholderValue,
		}
	}

	if ext.Date == "" || ext.Payee == "" {
		rec := Record{
			OriginalName: name,
			NewName:      placeholderName,
			Status:       StatusFieldsMissing,
			Type:         ext.Type,
			Date:         ext.Date,
			Payee:        ext.Payee,
		}
		if rec.Date == "" {
			rec.Date = placeholderValue
		}
		if rec.Payee == "" {
			rec.Payee = placeholderValue
		}
		return rec
	}

	payee := SanitizeName(ext.Payee)
	newName := fmt.Sprintf("%s - %s.pdf", ext.Date, payee)
	newPath := filepath.Join(workDir, newName)

	// An existing target is replaced: receipts with identical date and
	// payee collapse to a single output entry, last one wins.
	if err := os.Rename(path, newPath); err != nil {
		slog.Error("Failed to rename receipt", "file", name, "target", newName, "error", err)
		return Record{
			OriginalName: name,
			NewName:      placeholderName,
			Status:       StatusRenameFailed,
			Error:        err.Error(),
			Type:         ext.Type,
			Date:         ext.Date,
			Payee:        payee,
		}
	}

	*renamed = append(*renamed, newPath)
	return Record{
		OriginalName: name,
		NewName:      newName,
		Status:       StatusRenamed,
		Type:         ext.Type,
		Date:         ext.Date,
		Payee:        payee,
	}
}

// GetRun retrieves a run by ID
func (s *Service) GetRun(id string) (*Run, error) {
	run, err := s.db.GetRun(id)
	if err != nil {
		return nil, fmt.Errorf("getting run: %w", err)
	}
	return run, nil
}

// ListRuns returns all runs
func (s *Service) ListRuns() ([]*Run, error) {
	runs, err := s.db.ListRuns()
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

// DeleteRun removes a run and its stored output archive
func (s *Service) DeleteRun(id string) error {
	run, err := s.db.GetRun(id)
	if err != nil {
		return fmt.Errorf("getting run for deletion: %w", err)
	}

	if run.Filename != "" {
		if err := s.storage.Delete(run.Filename); err != nil {
			// Log error but continue with database deletion
			slog.Warn("Failed to delete output archive", "filename", run.Filename, "error", err)
		}
	}

	if err := s.db.DeleteRun(id); err != nil {
		return fmt.Errorf("deleting run from database: %w", err)
	}
	return nil
}

// GetRunArchive retrieves the output archive for a run along with its
// download filename
func (s *Service) GetRunArchive(id string) ([]byte, string, error) {
	run, err := s.db.GetRun(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting run: %w", err)
	}
	if run.Filename == "" {
		return nil, "", fmt.Errorf("run %s has no output archive", id)
	}

	data, err := s.storage.Get(run.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("getting output archive: %w", err)
	}

	return data, run.OutputName, nil
}
