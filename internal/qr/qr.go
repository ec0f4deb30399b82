// Package qr builds shareable login links and their QR images.
package qr

import (
	"encoding/base64"
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"
)

// LoginURL builds the shareable login link for an access code:
// <base>/login?code=<code>.
func LoginURL(baseURL, code string) string {
	return baseURL + "/login?code=" + url.QueryEscape(code)
}

// DataURL encodes s as a QR PNG and returns it as a data: URL suitable for
// an <img src>. Pure; fails only on encoder or size errors.
func DataURL(s string) (string, error) {
	png, err := qrcode.Encode(s, qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("qr encode: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
