// Package export renders Vastu reports to PDF and cost estimates to XLSX.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/grihastudio/griha/internal/model"
)

// BuildVastuPDF renders a printable PDF of a room's Vastu report.
func BuildVastuPDF(room model.Room, rep model.VastuReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Vastu Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Room: %s (%s)", room.Name, room.RoomType))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Facing: %s (%d deg)", rep.Facing, room.FacingAngle))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Score: %d/100 (%s)", rep.Score, rep.Grade))
	pdf.Ln(5)
	if !rep.ComputedAt.IsZero() {
		pdf.Cell(0, 6, fmt.Sprintf("Computed: %s", rep.ComputedAt.Format(time.RFC3339)))
		pdf.Ln(5)
	}
	if rep.Summary != "" {
		pdf.Ln(2)
		pdf.MultiCell(0, 5, rep.Summary, "", "L", false)
	}
	pdf.Ln(4)

	// Zones table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 6, "Zone", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Element", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Score", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Verdict", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, z := range rep.Zones {
		pdf.CellFormat(40, 6, z.Zone, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, z.Element, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", z.Score), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, z.Verdict, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	if len(rep.Remedies) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 6, "Remedies")
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 10)
		for _, r := range rep.Remedies {
			pdf.MultiCell(0, 5, "- "+r, "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildEstimateXLSX renders a cost estimate as a two-sheet workbook.
func BuildEstimateXLSX(design model.Design, est model.CostEstimate) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	itemsSheet := "items"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(itemsSheet)

	_ = f.SetCellValue(summarySheet, "A1", "Cost Estimate")
	_ = f.SetCellValue(summarySheet, "A3", "Design")
	_ = f.SetCellValue(summarySheet, "B3", design.ID)
	_ = f.SetCellValue(summarySheet, "A4", "Style")
	_ = f.SetCellValue(summarySheet, "B4", design.Style)
	_ = f.SetCellValue(summarySheet, "A5", "Currency")
	_ = f.SetCellValue(summarySheet, "B5", est.Currency)
	_ = f.SetCellValue(summarySheet, "A6", "Subtotal")
	_ = f.SetCellValue(summarySheet, "B6", est.Subtotal)
	_ = f.SetCellValue(summarySheet, "A7", "Tax")
	_ = f.SetCellValue(summarySheet, "B7", est.Tax)
	_ = f.SetCellValue(summarySheet, "A8", "Total")
	_ = f.SetCellValue(summarySheet, "B8", est.Total)
	if !est.GeneratedAt.IsZero() {
		_ = f.SetCellValue(summarySheet, "A9", "Generated")
		_ = f.SetCellValue(summarySheet, "B9", est.GeneratedAt.Format(time.RFC3339))
	}

	_ = f.SetCellValue(itemsSheet, "A1", "Item")
	_ = f.SetCellValue(itemsSheet, "B1", "Category")
	_ = f.SetCellValue(itemsSheet, "C1", "Quantity")
	_ = f.SetCellValue(itemsSheet, "D1", "Unit")
	_ = f.SetCellValue(itemsSheet, "E1", "Unit Cost")
	_ = f.SetCellValue(itemsSheet, "F1", "Subtotal")
	for i, item := range est.Items {
		row := i + 2
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("A%d", row), item.Label)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("B%d", row), item.Category)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("C%d", row), item.Quantity)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("D%d", row), item.Unit)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("E%d", row), item.UnitCost)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("F%d", row), item.Subtotal)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
