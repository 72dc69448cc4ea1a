// Package cipher implements the reversible cipher used for function
// renaming and string encryption: byte-wise XOR with the key repeated
// cyclically, with hexadecimal encoding on top so ciphertext stays
// printable.
//
// Decode is the exact inverse of Encode for any key of length >= 1, so the
// deobfuscation tool can recover original names from obfuscated binaries.
// The scheme is deliberately weak; it hides names from casual inspection
// and nothing more.
package cipher

import (
	"encoding/hex"

	"github.com/djolertrk/kovid-obfuscation-passes/errors"
)

// XOR combines data with the cyclically repeated key. Applying it twice
// with the same key restores the input.
func XOR(data []byte, key string) ([]byte, error) {
	if len(key) == 0 {
		return nil, errors.InvalidKey(errors.PhaseEncode)
	}
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ key[i%len(key)]
	}
	return out, nil
}

// Encode encrypts plaintext with the key and returns lowercase hex.
func Encode(plaintext, key string) (string, error) {
	xored, err := XOR([]byte(plaintext), key)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(xored), nil
}

// Decode reverses Encode: hex-decode, then XOR with the same key.
func Decode(ciphertext, key string) (string, error) {
	if len(key) == 0 {
		return "", errors.InvalidKey(errors.PhaseDecode)
	}
	xored, err := hex.DecodeString(ciphertext)
	if err != nil {
		return "", errors.InvalidCiphertext("ciphertext is not valid hex", err)
	}
	plain, err := XOR(xored, key)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
