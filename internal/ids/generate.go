// Package ids generates and resolves the short identifiers used for projects,
// todos, subtasks, and templates.
package ids

import (
	"crypto/sha256"
	"encoding/base32"
	"fmt"
	"sync"

	internalstrings "github.com/amonks/tasknest/internal/strings"
	nanoid "github.com/jaevor/go-nanoid"
)

// DefaultLength is the standard length for generated IDs.
const DefaultLength = 8

// Alphabet is the lowercase base32 alphabet shared by random and derived IDs.
const Alphabet = "abcdefghijklmnopqrstuvwxyz234567"

var (
	generatorMu sync.Mutex
	generators  = map[int]func() string{}
)

// New returns a random ID of DefaultLength characters drawn from Alphabet.
func New() string {
	return NewWithLength(DefaultLength)
}

// NewWithLength returns a random ID of the given length drawn from Alphabet.
func NewWithLength(length int) string {
	if length <= 0 {
		return ""
	}
	return generator(length)()
}

// NewPrefixed returns a random ID with a fixed prefix, such as "tpl-".
func NewPrefixed(prefix string) string {
	return prefix + New()
}

func generator(length int) func() string {
	generatorMu.Lock()
	defer generatorMu.Unlock()
	if gen, ok := generators[length]; ok {
		return gen
	}
	gen, err := nanoid.CustomASCII(Alphabet, length)
	if err != nil {
		panic(fmt.Sprintf("ids: build generator: %v", err))
	}
	generators[length] = gen
	return gen
}

// Generate creates a deterministic, lowercase base32 ID derived from input.
func Generate(input string, length int) string {
	hash := sha256.Sum256([]byte(input))
	encoded := base32.StdEncoding.EncodeToString(hash[:])
	if length <= 0 {
		return ""
	}
	if length > len(encoded) {
		length = len(encoded)
	}
	return internalstrings.NormalizeLower(encoded[:length])
}
