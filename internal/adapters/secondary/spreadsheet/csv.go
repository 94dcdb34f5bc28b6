package spreadsheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/lorrc/ticket-analytics-backend/internal/core/domain"
	apperrors "github.com/lorrc/ticket-analytics-backend/internal/core/errors"
)

// decodeCSV reads a comma-separated export. The first record is the header
// row; ragged records are tolerated and padded against the header.
func decodeCSV(r io.Reader) ([]domain.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperrors.NewIngestionError(apperrors.ErrEmptyDataset)
		}
		return nil, apperrors.NewIngestionError(fmt.Errorf("%w: %v", apperrors.ErrUnreadableFile, err))
	}

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.NewIngestionError(fmt.Errorf("%w: %v", apperrors.ErrUnreadableFile, err))
		}
		records = append(records, record)
	}

	return rowsFromRecords(header, records), nil
}
