//go:build !ebiten

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "The GUI build of lifeboard requires the ebiten build tag.")
	fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/life` or build with `-tags ebiten`,")
	fmt.Fprintln(os.Stderr, "or use `go run ./cmd/life-term` for the terminal version.")
	os.Exit(2)
}
