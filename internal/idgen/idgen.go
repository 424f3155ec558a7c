// Package idgen generates short unique suffixes for downloaded file names.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

const (
	Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	Length   = 10

	HistoryFilenamePrefix = "vton-history-"
)

func Generate() (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id, nil
}

// HistoryFilename returns vton-history-<id>.png.
func HistoryFilename() (string, error) {
	id, err := Generate()
	if err != nil {
		return "", err
	}
	return HistoryFilenamePrefix + id + ".png", nil
}
