package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/receiving-normalizer/internal/entity"
)

// Header is the fixed output column order expected by the inventory import.
var Header = []string{
	"packageID",
	"catalogProduct",
	"room",
	"PricePerUnit",
	"costPerUnit",
	"quantity",
	"expDate",
}

// Service serializes a normalized record set for the inventory import sink.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// WriteCSV writes the record set as delimited rows in the fixed column
// order, header first.
func (s *Service) WriteCSV(w io.Writer, rows []entity.ReceivingRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(recordFields(r)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	s.logger.Info("export.csv.ok", "rows", len(rows))
	return nil
}

// BuildXLSX returns the record set as an XLSX workbook (as bytes), for
// imports that want a spreadsheet instead of delimited text.
func (s *Service) BuildXLSX(rows []entity.ReceivingRecord) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Receiving"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	for i, h := range Header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, r := range rows {
		for col, v := range recordFields(r) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 24) // package id
	_ = f.SetColWidth(sheet, "B", "B", 36) // catalog product
	_ = f.SetColWidth(sheet, "C", "C", 18) // room
	_ = f.SetColWidth(sheet, "D", "E", 14) // prices
	_ = f.SetColWidth(sheet, "G", "G", 12) // exp date

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// recordFields renders one record in Header order. Money keeps two decimal
// places; empty enrichment fields stay empty rather than becoming "0".
func recordFields(r entity.ReceivingRecord) []string {
	return []string{
		r.PackageID,
		r.CatalogProduct,
		r.Room,
		r.PricePerUnit.StringFixed(2),
		r.CostPerUnit.StringFixed(2),
		strconv.Itoa(r.Quantity),
		r.ExpDate,
	}
}
