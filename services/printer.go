package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/restohub/restopos/models"
)

// TicketPrinter renders tickets and receipts for the kitchen and the
// counter. Print failures are logged by the caller and never abort the
// order operation that triggered them.
type TicketPrinter interface {
	PrintKOT(kot *models.KOT) error
	PrintReceipt(receipt *models.Receipt) error
}

// PDFPrinter writes PDFs into a spool directory, one file per ticket.
type PDFPrinter struct {
	Dir string
}

func NewPDFPrinter(dir string) *PDFPrinter {
	return &PDFPrinter{Dir: dir}
}

func (p *PDFPrinter) PrintKOT(kot *models.KOT) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("KITCHEN ORDER TICKET (%s)", kot.Type), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 12)
	if kot.TableName != "" {
		pdf.CellFormat(0, 7, "Table: "+kot.TableName, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 7, fmt.Sprintf("Order #%d", kot.OrderID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Created: "+kot.CreatedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 13)
	switch kot.Type {
	case models.KOTVoid:
		pdf.CellFormat(0, 8, "Cancelled Items", "", 1, "L", false, 0, "")
	case models.KOTUpdate:
		pdf.CellFormat(0, 8, "Updated / Added Items", "", 1, "L", false, 0, "")
	default:
		pdf.CellFormat(0, 8, "New Order Items", "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 12)
	for _, it := range kot.Items {
		var line string
		if it.OldQuantity != nil {
			line = fmt.Sprintf("- %s (%s) %d -> %d", it.Name, it.UnitName, *it.OldQuantity, it.Quantity)
		} else {
			line = fmt.Sprintf("- %s (%s) x%d [%s]", it.Name, it.UnitName, it.Quantity, it.ChangeType)
		}
		pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
	}

	if kot.Note != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(0, 6, "Note: "+kot.Note, "", "L", false)
	}

	return p.write(pdf, fmt.Sprintf("KOT_%d.pdf", kot.ID))
}

func (p *PDFPrinter) PrintReceipt(receipt *models.Receipt) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "RECEIPT", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "No: "+receipt.ReceiptNumber, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	for _, it := range receipt.Items {
		pdf.CellFormat(120, 7, fmt.Sprintf("%s (%s) x%d", it.ItemName, it.UnitName, it.Quantity), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, it.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	rows := []struct {
		label string
		value string
	}{
		{"Items Total", receipt.ItemsTotal.StringFixed(2)},
		{"Discount", receipt.DiscountAmount.StringFixed(2)},
		{"VAT", receipt.VatAmount.StringFixed(2)},
		{"Delivery", receipt.DeliveryCharge.StringFixed(2)},
		{"Total", receipt.Total.StringFixed(2)},
		{"Paid", receipt.PaidAmount.StringFixed(2)},
		{"Due", receipt.DueAmount.StringFixed(2)},
	}
	for _, row := range rows {
		pdf.CellFormat(120, 7, row.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, row.value, "", 1, "R", false, 0, "")
	}

	if receipt.CustomerName != "" {
		pdf.Ln(2)
		pdf.CellFormat(0, 7, "Customer: "+receipt.CustomerName, "", 1, "L", false, 0, "")
	}

	return p.write(pdf, fmt.Sprintf("RECEIPT_%s.pdf", receipt.ReceiptNumber))
}

func (p *PDFPrinter) write(pdf *fpdf.Fpdf, name string) error {
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return err
	}
	return pdf.OutputFileAndClose(filepath.Join(p.Dir, name))
}
