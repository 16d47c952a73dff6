package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// prints fresh JWT_SECRET and SESSION_SECRET lines for a .env file
func main() {
	if err := write(os.Stdout, rand.Reader); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func write(w io.Writer, random io.Reader) error {
	for _, name := range []string{"JWT_SECRET", "SESSION_SECRET"} {
		secret, err := generate(random)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s=%s\n", name, secret); err != nil {
			return err
		}
	}
	return nil
}

// 32 random bytes, hex encoded
func generate(random io.Reader) (string, error) {
	buf := make([]byte, 32)
	if _, err := io.ReadFull(random, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
