package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/lorrc/ticket-analytics-backend/internal/core/domain"
	apperrors "github.com/lorrc/ticket-analytics-backend/internal/core/errors"
)

// decodeWorkbook reads the first sheet of an Office Open XML workbook.
// Cells come back raw, so date cells surface as serial-number strings and
// the normalizer decides how to interpret them.
func decodeWorkbook(r io.Reader) ([]domain.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewIngestionError(fmt.Errorf("%w: %v", apperrors.ErrUnreadableFile, err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewIngestionError(apperrors.ErrEmptyDataset)
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewIngestionError(fmt.Errorf("%w: %v", apperrors.ErrUnreadableFile, err))
	}
	if len(rows) == 0 {
		return nil, apperrors.NewIngestionError(apperrors.ErrEmptyDataset)
	}

	return rowsFromRecords(rows[0], rows[1:]), nil
}
