// Package eventlog keeps a ledger of icon files produced by the tools.
package eventlog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"
)

// Action says what happened to one output file.
type Action string

const (
	ActionGenerated Action = "generated"
	ActionTinted    Action = "tinted"
	ActionCopied    Action = "copied"
	ActionSkipped   Action = "skipped"
	ActionFailed    Action = "failed"
)

// Entry is one ledger row.
type Entry struct {
	Time    time.Time
	Flavor  string // "stage", "prod" or "" for the generator
	Density string
	Source  string
	Output  string
	Action  Action
	SHA256  string // hex digest of Output, empty when nothing was written
	Error   string
}

// Store abstracts ledger storage.
type Store interface {
	Record(e Entry) error
	Entries(limit int) ([]Entry, error) // newest first, 0 = all
	Clear() error
	Path() string
	Close() error
}

// Checksum returns the hex SHA-256 of the file at path.
func Checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("eventlog: checksum %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
