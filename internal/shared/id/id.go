// Package id generates the string identifiers used as primary keys.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// DefaultLength of the random part of an ID.
const DefaultLength = 16

const (
	PrefixWeblog       = "wb"
	PrefixCategory     = "cat"
	PrefixEntry        = "ent"
	PrefixComment      = "cmt"
	PrefixUser         = "usr"
	PrefixMediaDir     = "dir"
	PrefixSubscription = "sub"
	PrefixFeedEntry    = "fe"
	PrefixRequest      = "req"
)

// Generate returns a random base62 string of the given length.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	out := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}

// New returns "prefix_random". It panics only if the system random source fails.
func New(prefix string) string {
	s, err := Generate(DefaultLength)
	if err != nil {
		panic(err)
	}
	return prefix + "_" + s
}

// HasPrefix reports whether id was produced by New(prefix).
func HasPrefix(id, prefix string) bool {
	p, rest, ok := strings.Cut(id, "_")
	return ok && p == prefix && rest != ""
}
