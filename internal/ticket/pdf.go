package ticket

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFData carries everything printed on a ticket.
type PDFData struct {
	MovieTitle  string
	TheaterName string
	Location    string
	ScreenName  string
	ShowDate    string
	ShowTime    string
	Seats       []string
	TotalCents  uint32
	CheckinCode string
	UserName    string
}

// RenderPDF produces an A4 ticket PDF with the check-in QR centered at the
// top and the show details beneath it.
func RenderPDF(d PDFData) ([]byte, error) {
	qrPNG, err := CheckinQRPNG(d.CheckinCode, QRSize)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	imgName := "qr_" + d.CheckinCode
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(qrPNG))
	// 80x80mm QR centered on the 210mm page.
	pdf.ImageOptions(imgName, (210-80)/2, 15, 80, 80, false, opts, 0, "")

	pdf.SetY(100)
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, d.MovieTitle, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	line := func(label, value string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(50, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}
	line("Theater", fmt.Sprintf("%s, %s", d.TheaterName, d.Location))
	line("Screen", d.ScreenName)
	line("Date", d.ShowDate)
	line("Time", d.ShowTime)
	line("Seats", strings.Join(d.Seats, ", "))
	line("Total", fmt.Sprintf("%.2f", float64(d.TotalCents)/100))
	line("Guest", d.UserName)
	line("Check-in code", d.CheckinCode)

	pdf.SetY(-30)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, "Present this ticket at the entrance. The code is valid for a single check-in.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
