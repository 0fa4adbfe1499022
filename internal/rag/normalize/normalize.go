package normalize

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"tablerag/internal/domain/document"
	"tablerag/pkg/logger_i"
)

var (
	// ErrUnsupportedType means no strategy claims the file extension.
	ErrUnsupportedType = errors.New("unsupported document type")
	// ErrNoUnits means the source opened fine but produced nothing usable.
	ErrNoUnits = errors.New("document produced no units")
)

// Strategy converts one source format into normalized units. Per-sheet,
// per-row and per-page failures are handled inside the strategy (skip and
// log); a strategy only returns an error when the whole source is unreadable.
type Strategy interface {
	Name() string
	Extensions() []string
	Normalize(path string) ([]document.Unit, error)
}

// Loader holds an ordered strategy list and dispatches by file extension.
type Loader struct {
	strategies []Strategy
	logger     *logger_i.Logger
}

func NewLoader() *Loader {
	return &Loader{
		strategies: []Strategy{
			&excelStrategy{},
			&csvStrategy{},
			&jsonStrategy{},
			&xmlStrategy{},
			&wordStrategy{},
			&pdfStrategy{},
		},
		logger: logger_i.NewLogger("Normalizer"),
	}
}

// DetectType maps a file extension to its document type discriminator.
func DetectType(path string) document.Type {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return document.Excel
	case ".docx", ".doc", ".odt", ".rtf", ".txt":
		return document.Word
	case ".pdf":
		return document.PDF
	case ".csv":
		return document.CSV
	case ".json":
		return document.JSON
	case ".xml", ".html":
		return document.XML
	default:
		return document.ERR
	}
}

// Normalize runs the first strategy claiming the file's extension and reports
// which one produced the units. Every returned unit has validated metadata;
// units that fail validation are dropped with a log line rather than failing
// the whole document.
func (l *Loader) Normalize(path string) ([]document.Unit, string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range l.strategies {
		if !claims(s, ext) {
			continue
		}
		units, err := s.Normalize(path)
		if err != nil {
			return nil, s.Name(), fmt.Errorf("%s: %w", s.Name(), err)
		}

		kept := units[:0]
		for _, u := range units {
			if err := u.Meta.Validate(); err != nil {
				l.logger.Warn("Dropping unit with invalid metadata", "error", err)
				continue
			}
			kept = append(kept, u)
		}
		if len(kept) == 0 {
			return nil, s.Name(), ErrNoUnits
		}
		l.logger.Info("Normalized document", "path", path, "strategy", s.Name(), "units", len(kept))
		return kept, s.Name(), nil
	}
	return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
}

func claims(s Strategy, ext string) bool {
	for _, e := range s.Extensions() {
		if e == ext {
			return true
		}
	}
	return false
}
