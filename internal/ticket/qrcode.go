// Package ticket renders a booking as scannable artifacts: a QR code of
// the check-in code and a printable PDF ticket embedding it. The QR
// carries only the opaque check-in code; the operator console resolves it
// against the database, so no sensitive data rides in the image.
package ticket

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// Standard QR edge length in pixels; large enough for phone-screen scans.
const QRSize = 300

// CheckinQRPNG encodes a booking's check-in code as a PNG QR image with
// medium error correction.
func CheckinQRPNG(code string, size int) ([]byte, error) {
	if size <= 0 {
		size = QRSize
	}
	qr, err := qrcode.New(code, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("generate qr: %w", err)
	}
	png, err := qr.PNG(size)
	if err != nil {
		return nil, fmt.Errorf("encode qr png: %w", err)
	}
	return png, nil
}
