// Package spreadsheet decodes uploaded ticket exports into raw rows keyed
// by column header. It is the only place that touches file formats; the
// core consumes []domain.RawRow and nothing else.
package spreadsheet

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/lorrc/ticket-analytics-backend/internal/core/domain"
	apperrors "github.com/lorrc/ticket-analytics-backend/internal/core/errors"
	"github.com/lorrc/ticket-analytics-backend/internal/core/ports"
)

// Decoder dispatches on file extension to the format-specific decoders.
type Decoder struct{}

var _ ports.SpreadsheetDecoder = (*Decoder)(nil)

// NewDecoder creates the spreadsheet decoder adapter.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode returns the ordered rows of the export. Every row carries a key
// for every header, with empty string for empty cells, so column presence
// can be checked on any row.
func (d *Decoder) Decode(ctx context.Context, r io.Reader, filename string) ([]domain.RawRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return decodeCSV(r)
	case ".xlsx":
		return decodeWorkbook(r)
	case ".xls":
		return decodeLegacyWorkbook(r)
	default:
		return nil, apperrors.NewIngestionError(apperrors.ErrUnsupportedFormat)
	}
}

// rowsFromRecords zips header and data records into raw rows. Short data
// records are padded with empty strings; extra trailing cells with no
// header are dropped.
func rowsFromRecords(header []string, records [][]string) []domain.RawRow {
	rows := make([]domain.RawRow, 0, len(records))
	for _, record := range records {
		row := make(domain.RawRow, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}
