package spreadsheet

import (
	"bytes"
	"fmt"
	"io"

	"github.com/shakinm/xlsReader/xls"

	"github.com/lorrc/ticket-analytics-backend/internal/core/domain"
	apperrors "github.com/lorrc/ticket-analytics-backend/internal/core/errors"
)

// BIFF8 caps a sheet at 256 columns, so scanning that far always covers
// the whole header row.
const maxLegacyColumns = 256

// decodeLegacyWorkbook reads the first sheet of a pre-2007 BIFF .xls
// workbook. These are OLE compound files, not OOXML zip archives, so they
// take a separate reader from the .xlsx path. Cells surface as strings
// and numeric date cells keep their serial form for the normalizer.
func decodeLegacyWorkbook(r io.Reader) ([]domain.RawRow, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.NewIngestionError(fmt.Errorf("%w: %v", apperrors.ErrUnreadableFile, err))
	}

	wb, err := xls.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, apperrors.NewIngestionError(fmt.Errorf("%w: %v", apperrors.ErrUnreadableFile, err))
	}

	sheet, err := wb.GetSheet(0)
	if err != nil {
		return nil, apperrors.NewIngestionError(apperrors.ErrEmptyDataset)
	}

	records := make([][]string, 0, sheet.GetNumberRows())
	for i := 0; i <= sheet.GetNumberRows(); i++ {
		rw, err := sheet.GetRow(i)
		if err != nil {
			continue
		}

		record := make([]string, maxLegacyColumns)
		width := 0
		for j := 0; j < maxLegacyColumns; j++ {
			cell, err := rw.GetCol(j)
			if err != nil {
				continue
			}
			record[j] = cell.GetString()
			if record[j] != "" {
				width = j + 1
			}
		}
		records = append(records, record[:width])
	}
	if len(records) == 0 {
		return nil, apperrors.NewIngestionError(apperrors.ErrEmptyDataset)
	}

	return rowsFromRecords(records[0], records[1:]), nil
}
