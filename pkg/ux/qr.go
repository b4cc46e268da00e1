// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// QRString renders content as a QR code made of terminal block characters.
func QRString(content string) (string, error) {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}
	return qr.ToSmallString(false), nil
}
