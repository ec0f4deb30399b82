// One-off: go run scripts/genqr.go CODE [outfile]
package main

import (
	"fmt"
	"os"

	qrcode "github.com/skip2/go-qrcode"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: genqr CODE [outfile]")
		os.Exit(1)
	}
	code := os.Args[1]
	out := code + ".png"
	if len(os.Args) > 2 {
		out = os.Args[2]
	}
	base := os.Getenv("BASE_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	url := base + "/login?code=" + code
	if err := qrcode.WriteFile(url, qrcode.Medium, 256, out); err != nil {
		panic(err)
	}
	fmt.Printf("%s -> %s\n", url, out)
}
