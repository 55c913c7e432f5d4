// Package loader reads journal workbooks into normalized in-memory records.
//
// Every sheet must expose a date column and a department column (headers
// matched by normalized exact/substring lookup); a building column is
// optional. Rows without a parseable date or with empty department text are
// data-cleaning exclusions, dropped silently rather than reported — ordinary
// messy spreadsheet input must never crash the host application.
package loader

import (
	"os"

	"github.com/xuri/excelize/v2"

	"lab-journal-service/internal/models"
	"lab-journal-service/internal/textnorm"
	"lab-journal-service/pkg/errors"
	"lab-journal-service/pkg/logger"
)

// Loader reads journal workbooks according to its configuration
type Loader struct {
	config *Config
	logger logger.Logger
}

// NewLoader creates a Loader with the given configuration
func NewLoader(config *Config) (*Loader, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, errors.ConfigurationError(errors.CodeInvalidConfig, "loader", config, err)
	}

	return &Loader{
		config: config,
		logger: logger.GetGlobalLogger().WithComponent("loader"),
	}, nil
}

// Config returns a copy of the loader configuration
func (l *Loader) Config() *Config {
	return l.config.Clone()
}

// Load opens the workbook at path and loads every configured sheet. The
// first sheet failing required-column detection aborts the whole load; use
// LoadSheet directly for a skip-bad-sheets policy.
func (l *Loader) Load(path string) (map[string]*models.SheetData, error) {
	f, err := l.openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return l.LoadWorkbook(f)
}

// LoadWorkbook loads every configured sheet from an open workbook
func (l *Loader) LoadWorkbook(f *excelize.File) (map[string]*models.SheetData, error) {
	data := make(map[string]*models.SheetData, len(l.config.Sheets))

	for _, sheet := range l.config.Sheets {
		sheetData, err := l.LoadSheet(f, sheet)
		if err != nil {
			return nil, err
		}
		data[sheet] = sheetData
	}

	return data, nil
}

// LoadSheet reads one sheet into retained records. It fails with a typed
// missing-column error when the date or department column cannot be located;
// a missing building column is tolerated and treated as all-empty.
func (l *Loader) LoadSheet(f *excelize.File, sheet string) (*models.SheetData, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.MissingSheetError(sheet, err)
	}
	if len(rows) == 0 {
		return nil, errors.MissingColumnError(sheet, l.config.DateColumn)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = textnorm.Normalize(h)
	}

	dateIdx, ok := findColumn(headers, l.config.DateColumn)
	if !ok {
		return nil, errors.MissingColumnError(sheet, l.config.DateColumn)
	}
	depIdx, ok := findColumn(headers, l.config.DepartmentColumn)
	if !ok {
		return nil, errors.MissingColumnError(sheet, l.config.DepartmentColumn)
	}
	buildingIdx, hasBuilding := findColumn(headers, l.config.BuildingColumn)

	sheetData := models.NewSheetData(sheet, headers)
	dropped := 0

	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}

		rawDep := cellAt(row, depIdx)
		normDep := textnorm.Normalize(rawDep)
		date, hasDate := ParseDate(cellAt(row, dateIdx))

		// Retention invariant: both a department and a date, or the row
		// is excluded. This is data cleaning, not an error condition.
		if normDep == "" || !hasDate {
			dropped++
			continue
		}

		building := ""
		if hasBuilding {
			building = textnorm.Normalize(cellAt(row, buildingIdx))
		}

		sheetData.Records = append(sheetData.Records, &models.JournalRecord{
			Sheet:                sheet,
			RawDepartment:        rawDep,
			NormalizedDepartment: normDep,
			Building:             building,
			Date:                 date,
			Cells:                padRow(row, len(headers)),
		})
	}

	l.logger.WithFields(logger.Fields{
		"sheet":    sheet,
		"retained": len(sheetData.Records),
		"dropped":  dropped,
	}).Debug("Loaded sheet")

	return sheetData, nil
}

func (l *Loader) openWorkbook(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.FileError(errors.CodeFileNotFound, path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WorkbookError(path, err)
	}
	return f, nil
}

// cellAt returns the cell at index or "" when the row is shorter — trailing
// empty cells are omitted by the workbook reader.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if textnorm.Normalize(cell) != "" {
			return false
		}
	}
	return true
}

// padRow pads the original row to the header width so every record exposes
// the same column order downstream; cell values stay verbatim.
func padRow(row []string, width int) []string {
	if len(row) >= width {
		return append([]string(nil), row[:width]...)
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
