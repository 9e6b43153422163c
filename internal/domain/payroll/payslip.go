package payroll

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// PayslipData bundles the payroll entry with the employee details rendered
// on the document.
type PayslipData struct {
	Entry        *Entry
	EmployeeName string
	Position     string
	Email        string
	CompanyName  string
}

// WritePayslip renders a single page payslip PDF for the entry.
func WritePayslip(w io.Writer, data PayslipData) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s", data.Entry.Period), false)
	pdf.AddPage()

	company := data.CompanyName
	if company == "" {
		company = "HR Board"
	}
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, company, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Payslip for %s", data.Entry.Period), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(40, 7, "Employee", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, data.EmployeeName, "", 1, "L", false, 0, "")

	if data.Position != "" {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(40, 7, "Position", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, data.Position, "", 1, "L", false, 0, "")
	}
	if data.Email != "" {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(40, 7, "Email", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, data.Email, "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	rows := []struct {
		label  string
		amount float64
	}{
		{"Gross pay", data.Entry.GrossPay},
		{"Deductions", data.Entry.Deductions},
		{"Net pay", data.Entry.NetPay},
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(120, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 8, "Amount", "1", 1, "R", true, 0, "")
	for i, row := range rows {
		if i == len(rows)-1 {
			pdf.SetFont("Helvetica", "B", 11)
		} else {
			pdf.SetFont("Helvetica", "", 11)
		}
		pdf.CellFormat(120, 8, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, fmt.Sprintf("%.2f", row.amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "I", 9)
	status := data.Entry.Status
	if data.Entry.PaidAt != nil {
		status = fmt.Sprintf("%s on %s", status, data.Entry.PaidAt.Format("2 January 2006"))
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Status: %s", status), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s", time.Now().UTC().Format("2 January 2006 15:04 MST")), "", 1, "L", false, 0, "")

	return pdf.Output(w)
}
