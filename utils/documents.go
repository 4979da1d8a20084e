package utils

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Govind-619/ClipCraft/models"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"
)

// ReceiptData is what gets printed on a payment receipt
type ReceiptData struct {
	PaymentID string
	OrderID   string
	PlanName  string
	UserID    string
	Amount    int64
	Currency  string
	PaidAt    time.Time
}

// formatAmount renders paise as "INR 499.00". The core PDF fonts have no rupee glyph.
func formatAmount(currency string, paise int64) string {
	return fmt.Sprintf("%s %d.%02d", currency, paise/100, paise%100)
}

// PaymentReceiptPDF renders a one-page receipt
func PaymentReceiptPDF(r ReceiptData) ([]byte, error) {
	if r.Currency == "" {
		r.Currency = models.DefaultCurrency
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, AppName)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "PAYMENT RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	rows := [][2]string{
		{"Payment ID", r.PaymentID},
		{"Order ID", r.OrderID},
		{"Plan", r.PlanName},
		{"Customer", r.UserID},
		{"Date", r.PaidAt.Format("2006-01-02 15:04:05")},
	}
	for _, row := range rows {
		pdf.CellFormat(50, 8, row[0]+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(120, 8, row[1], "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(50, 10, "Amount Paid:", "", 0, "L", false, 0, "")
	pdf.CellFormat(120, 10, formatAmount(r.Currency, r.Amount), "", 1, "L", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 12)
	pdf.Cell(0, 10, "Thank you for subscribing!")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %v", err)
	}
	return buf.Bytes(), nil
}

// PaymentsWorkbook exports recorded payments as an xlsx workbook
func PaymentsWorkbook(payments []models.Payment) ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Payments")
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %v", err)
	}

	title := sheet.AddRow()
	title.AddCell().SetString(AppName + " - Payments Report")
	sheet.AddRow().AddCell().SetString("Generated: " + time.Now().Format("2006-01-02 15:04"))
	sheet.AddRow()

	headers := []string{"Payment ID", "Order ID", "Plan", "User ID", "Amount (INR)", "Status", "Date"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		style.ApplyFont = true
		cell.SetStyle(style)
	}

	var total int64
	for _, p := range payments {
		row := sheet.AddRow()
		row.AddCell().SetString(p.PaymentID)
		row.AddCell().SetString(p.OrderID)
		row.AddCell().SetString(p.PlanID)
		row.AddCell().SetString(p.UserID)
		row.AddCell().SetFloat(float64(p.Amount) / 100)
		row.AddCell().SetString(p.Status)
		row.AddCell().SetString(p.CreatedAt.Format("2006-01-02 15:04"))
		if p.Status != models.PaymentStatusFailed {
			total += p.Amount
		}
	}

	sheet.AddRow()
	totalRow := sheet.AddRow()
	totalRow.AddCell().SetString("Total collected")
	totalRow.AddCell().SetFloat(float64(total) / 100)

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %v", err)
	}
	return buf.Bytes(), nil
}
