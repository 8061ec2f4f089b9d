// Package backup produces and restores age-encrypted snapshots of all
// reps data. A snapshot is the full routine and workout history as JSON,
// encrypted with a passphrase (age scrypt) and armored, so it is safe to
// park in cloud storage or move between machines.
//
// Writes go through a temp file and rename to avoid torn snapshots.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"filippo.io/age"
	"filippo.io/age/armor"
)

// ErrWrongPassphrase is returned when decryption fails due to a bad passphrase.
var ErrWrongPassphrase = errors.New("wrong passphrase")

// ErrCorruptedSnapshot is returned when a snapshot exists but cannot be parsed.
var ErrCorruptedSnapshot = errors.New("snapshot is corrupted or unreadable")

// Snapshot is the plaintext payload inside an encrypted backup.
type Snapshot struct {
	CreatedAt time.Time       `json:"created_at"`
	Routines  []RoutineRecord `json:"routines"`
	Workouts  []WorkoutRecord `json:"workouts"`
}

// RoutineRecord is the portable form of a routine and its week schedule.
type RoutineRecord struct {
	Name      string                    `json:"name"`
	Active    bool                      `json:"active"`
	CreatedAt time.Time                 `json:"created_at"`
	Days      map[string][]ExerciseSlot `json:"days"`
}

// ExerciseSlot is one scheduled exercise in a routine day.
type ExerciseSlot struct {
	Name        string  `json:"name"`
	Sets        int     `json:"sets"`
	Reps        int     `json:"reps"`
	WeightKg    float64 `json:"weight_kg,omitempty"`
	RestSeconds int     `json:"rest_seconds,omitempty"`
}

// WorkoutRecord is the portable form of one session.
type WorkoutRecord struct {
	Ref         string       `json:"ref"`
	Routine     string       `json:"routine"`
	Day         string       `json:"day"`
	StartedAt   time.Time    `json:"started_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	Exercises   []SessionLog `json:"exercises,omitempty"`
}

// SessionLog is one exercise's completion record in a session.
type SessionLog struct {
	Name        string `json:"name"`
	SetsDone    int    `json:"sets_done"`
	SetsPlanned int    `json:"sets_planned"`
	Completed   bool   `json:"completed"`
}

// Write encrypts the snapshot to w.
func Write(w io.Writer, snap *Snapshot, passphrase string) error {
	raw, err := encrypt(snap, passphrase)
	if err != nil {
		return err
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// WriteFile encrypts the snapshot to path atomically.
func WriteFile(path string, snap *Snapshot, passphrase string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating backup directory: %w", err)
	}
	raw, err := encrypt(snap, passphrase)
	if err != nil {
		return err
	}
	return atomicWrite(path, raw)
}

// Read decrypts a snapshot from r.
// Returns ErrWrongPassphrase or ErrCorruptedSnapshot on failure.
func Read(r io.Reader, passphrase string) (*Snapshot, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return decrypt(raw, passphrase)
}

// ReadFile decrypts a snapshot from path.
func ReadFile(path string, passphrase string) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decrypt(raw, passphrase)
}

// encrypt serializes and encrypts a snapshot using age scrypt (passphrase-based).
func encrypt(snap *Snapshot, passphrase string) ([]byte, error) {
	jsonBytes, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("serializing snapshot: %w", err)
	}

	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating age recipient: %w", err)
	}

	var buf bytes.Buffer
	armorWriter := armor.NewWriter(&buf)

	w, err := age.Encrypt(armorWriter, recipient)
	if err != nil {
		return nil, fmt.Errorf("initializing age encryption: %w", err)
	}

	if _, err := w.Write(jsonBytes); err != nil {
		return nil, fmt.Errorf("encrypting snapshot: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}
	if err := armorWriter.Close(); err != nil {
		return nil, fmt.Errorf("finalizing armor: %w", err)
	}

	return buf.Bytes(), nil
}

// decrypt decrypts and deserializes a snapshot from age-encrypted bytes.
func decrypt(raw []byte, passphrase string) (*Snapshot, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating age identity: %w", err)
	}

	armorReader := armor.NewReader(bytes.NewReader(raw))
	r, err := age.Decrypt(armorReader, identity)
	if err != nil {
		// filippo.io/age does not export typed errors for wrong passphrase
		// (as of v1.x); match known message substrings instead.
		msg := err.Error()
		if strings.Contains(msg, "no identity matched") || strings.Contains(msg, "incorrect") {
			return nil, fmt.Errorf("%w: %v", ErrWrongPassphrase, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrCorruptedSnapshot, err)
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading decrypted data: %v", ErrCorruptedSnapshot, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(plaintext, &snap); err != nil {
		return nil, fmt.Errorf("%w: parsing snapshot JSON: %v", ErrCorruptedSnapshot, err)
	}
	return &snap, nil
}

// atomicWrite writes data to a temp file in the target directory, fsyncs,
// then renames into place.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".reps-backup-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}
