package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/djolertrk/kovid-obfuscation-passes/cipher"
	"github.com/djolertrk/kovid-obfuscation-passes/obfuscate"
)

func main() {
	var (
		key         = flag.String("key", obfuscate.DefaultKey, "Key used during obfuscation")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *interactive {
		if err := runInteractive(*key); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	names := flag.Args()
	if len(names) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: kovid-deobfuscator [-key secret] <obfuscated-name> [more names...]")
		fmt.Fprintln(os.Stderr, "       kovid-deobfuscator [-key secret] -i  (interactive mode)")
		os.Exit(1)
	}

	for _, name := range names {
		plain, err := recoverName(name, *key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s -> %s\n", name, plain)
	}
}

// recoverName reverses the renaming scheme: drop the leading underscore,
// hex-decode the payload, then decrypt it with the key.
func recoverName(name, key string) (string, error) {
	plain, err := cipher.Decode(strings.TrimPrefix(name, "_"), key)
	if err != nil {
		return "", fmt.Errorf("recover %s: %w", name, err)
	}
	return plain, nil
}
