package ticket

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestCheckinQRPNG(t *testing.T) {
	png, err := CheckinQRPNG("ABCDEF1234567890ABCDEF1234567890", QRSize)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic), "output is not a PNG")
}

func TestCheckinQRPNGDefaultSize(t *testing.T) {
	png, err := CheckinQRPNG("CODE123", 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestRenderPDF(t *testing.T) {
	pdf, err := RenderPDF(PDFData{
		MovieTitle:  "Interstellar",
		TheaterName: "Grand Cinema",
		Location:    "12 Main St",
		ScreenName:  "Screen 1",
		ShowDate:    "2026-08-30",
		ShowTime:    "19:30:00",
		Seats:       []string{"A1", "A2"},
		TotalCents:  3000,
		CheckinCode: "ABCDEF1234567890ABCDEF1234567890",
		UserName:    "Ada",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "output is not a PDF")
}
