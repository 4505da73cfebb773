// Package qr renders the printable student check-in card code.
package qr

import (
	"errors"

	qrcode "github.com/skip2/go-qrcode"
)

// CardPNG renders a student code as a PNG suitable for printing on the
// check-in card scanned at the door.
func CardPNG(code string, size int) ([]byte, error) {
	if code == "" {
		return nil, errors.New("qr: empty code")
	}
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(code, qrcode.Medium, size)
}
