// Command deflate reads bytes from stdin and writes their DEFLATE
// (RFC 1951) compressed form to stdout.
//
// Usage:
//
//	deflate < input > output.deflate
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/compresslab/deflate"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "deflate:", err)
		os.Exit(1)
	}
}

func run() error {
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	compressed, err := deflate.Compress(input)
	if err != nil {
		return err
	}

	if _, err := os.Stdout.Write(compressed); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}
	return nil
}
