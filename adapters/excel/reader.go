package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"fairlens/domain/core"
	"fairlens/domain/dataset"
	"fairlens/internal"
)

// DataReader loads Excel and CSV files into dataset snapshots. It
// implements ports.DatasetSource.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader for the given file, dispatching on
// extension.
func NewDataReader(filePath string) *DataReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// Snapshot reads the file into an immutable dataset. Values are coerced
// into tagged cells here, once, at the boundary.
func (r *DataReader) Snapshot(ctx context.Context) (*dataset.Dataset, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	start := time.Now()
	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, err
	}
	internal.DefaultLogger.Debug("read %d raw rows from %s in %s", len(rows), r.filePath, time.Since(start))

	return buildDataset(rows)
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV rows: %w", err)
	}
	return rows, nil
}

// buildDataset converts raw rows into the typed snapshot. The first row is
// the header; header names are normalized so every stage addresses columns
// the same way. Duplicate normalized headers keep the first occurrence.
func buildDataset(rows [][]string) (*dataset.Dataset, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("file has no rows")
	}

	var columns []core.ColumnName
	seen := make(map[core.ColumnName]bool)
	colIndex := make([]int, 0, len(rows[0]))
	for i, h := range rows[0] {
		name := core.NormalizeColumnName(h)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		columns = append(columns, name)
		colIndex = append(colIndex, i)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("header row has no usable column names")
	}

	records := make([]dataset.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		values := make(map[core.ColumnName]core.Value, len(columns))
		for c, name := range columns {
			idx := colIndex[c]
			if idx < len(row) {
				values[name] = core.ParseValue(row[idx])
			} else {
				values[name] = core.EmptyValue()
			}
		}
		records = append(records, dataset.NewRecord(columns, values))
	}

	return dataset.New(columns, records), nil
}
