package infra

// pdf.go renders an RFQ as an A4 document: header, supplier block, item
// table with decimal subtotals, and the grand total.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alimarchal/maharat-sub001/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateRFQPDF writes storagePath/rfq_<number>.pdf and returns its path.
// Items should have Product preloaded; Supplier and Status are optional.
func GenerateRFQPDF(rfq *model.RFQ, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, "rfq_"+safeFileName(rfq.RFQNumber)+".pdf")

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Request for Quotation", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "RFQ No. "+tr(rfq.RFQNumber), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, "Request date: "+rfq.RequestDate.Format("2006-01-02"), "", 1, "L", false, 0, "")
	if rfq.ClosingDate != nil {
		pdf.CellFormat(contentW, 6, "Closing date: "+rfq.ClosingDate.Format("2006-01-02"), "", 1, "L", false, 0, "")
	}
	if rfq.Status != nil {
		pdf.CellFormat(contentW, 6, "Status: "+tr(rfq.Status.Name), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// ── Supplier ─────────────────────────────────────────────────────────────
	if s := rfq.Supplier; s != nil {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 6, "Supplier", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW, 5, tr(s.Name), "", 1, "L", false, 0, "")
		for _, line := range []*string{s.Address, s.Email, s.Phone} {
			if line != nil && *line != "" {
				pdf.CellFormat(contentW, 5, tr(*line), "", 1, "L", false, 0, "")
			}
		}
		pdf.Ln(3)
	}

	// ── Items ────────────────────────────────────────────────────────────────
	colProduct := contentW * 0.46
	colQty := contentW * 0.14
	colPrice := contentW * 0.20
	colTotal := contentW * 0.20

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(colProduct, 7, "Product", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colQty, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colPrice, 7, "Unit price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colTotal, 7, "Subtotal", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	total := decimal.Zero
	for _, item := range rfq.Items {
		name := item.ProductID.String()
		if item.Product != nil {
			name = item.Product.Name
		}
		if len(name) > 48 {
			name = name[:47] + "..."
		}
		sub := item.Subtotal()
		total = total.Add(sub)
		pdf.CellFormat(colProduct, 6, tr(name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, 6, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colPrice, 6, item.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, 6, sub.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colProduct+colQty+colPrice, 7, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colTotal, 7, total.StringFixed(2), "1", 1, "R", false, 0, "")

	if rfq.Notes != nil && *rfq.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(contentW, 5, tr(*rfq.Notes), "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

var fileNameReplacer = strings.NewReplacer("/", "-", `\`, "-", " ", "_", "..", "_")

func safeFileName(s string) string { return fileNameReplacer.Replace(s) }
