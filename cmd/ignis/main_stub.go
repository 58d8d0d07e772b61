//go:build !ebiten

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "The window host of ignis requires the ebiten build tag.")
	fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/ignis`, or try `./cmd/ignis-term` and `./cmd/ignis-bench`.")
	os.Exit(2)
}
