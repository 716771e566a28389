// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package gatewayconfig

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/zeebo/blake3"

	"github.com/agentgate-foundation/agentgate/lib/atomicfile"
)

// Manifest is the sidecar written next to every backup copy.
type Manifest struct {
	// Source is the document the backup was taken from.
	Source string `json:"source"`

	// CreatedAt is when the backup was taken.
	CreatedAt time.Time `json:"created_at"`

	// Digest is the hex BLAKE3 digest of the backup bytes. Restore
	// verifies it before overwriting the live document.
	Digest string `json:"digest"`

	// Model is the model the document declared at backup time.
	Model string `json:"model"`
}

// Backup is a handle to one backup copy and its manifest.
type Backup struct {
	Path     string
	Manifest Manifest
}

func digestOf(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Backup copies the live document into the backup directory under a
// timestamped name and writes the manifest sidecar.
func (s *Store) Backup(now time.Time) (Backup, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return Backup{}, fmt.Errorf("reading gateway config %s: %w", s.Path, err)
	}

	var document map[string]any
	model := UnknownModel
	if err := json.Unmarshal(data, &document); err == nil {
		model = declaredModel(document)
	}

	if err := os.MkdirAll(s.BackupDir, 0755); err != nil {
		return Backup{}, fmt.Errorf("creating backup directory %s: %w", s.BackupDir, err)
	}

	name := fmt.Sprintf("%s.%d.bak", filepath.Base(s.Path), now.Unix())
	backupPath := filepath.Join(s.BackupDir, name)
	if err := atomicfile.WriteFile(backupPath, data, 0644); err != nil {
		return Backup{}, fmt.Errorf("writing backup %s: %w", backupPath, err)
	}

	manifest := Manifest{
		Source:    s.Path,
		CreatedAt: now.UTC(),
		Digest:    digestOf(data),
		Model:     model,
	}
	manifestData, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return Backup{}, fmt.Errorf("marshaling backup manifest: %w", err)
	}
	manifestData = append(manifestData, '\n')
	if err := atomicfile.WriteFile(manifestPath(backupPath), manifestData, 0644); err != nil {
		return Backup{}, fmt.Errorf("writing backup manifest: %w", err)
	}

	return Backup{Path: backupPath, Manifest: manifest}, nil
}

// Restore verifies a backup against its manifest and writes it back
// over the live document.
func (s *Store) Restore(backup Backup) error {
	data, err := os.ReadFile(backup.Path)
	if err != nil {
		return fmt.Errorf("reading backup %s: %w", backup.Path, err)
	}
	if got := digestOf(data); got != backup.Manifest.Digest {
		return fmt.Errorf("backup %s is corrupted: digest %s does not match manifest %s",
			backup.Path, got, backup.Manifest.Digest)
	}

	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	if err := atomicfile.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("restoring gateway config %s: %w", s.Path, err)
	}
	return nil
}

// OpenBackup loads the handle for a named backup file.
func OpenBackup(path string) (Backup, error) {
	manifestData, err := os.ReadFile(manifestPath(path))
	if err != nil {
		return Backup{}, fmt.Errorf("reading backup manifest for %s: %w", path, err)
	}
	var manifest Manifest
	if err := json.Unmarshal(manifestData, &manifest); err != nil {
		return Backup{}, fmt.Errorf("parsing backup manifest for %s: %w", path, err)
	}
	return Backup{Path: path, Manifest: manifest}, nil
}

// ListBackups returns the store's backups, oldest first. Backup files
// without a readable manifest are skipped; they cannot be restored
// safely anyway.
func (s *Store) ListBackups() ([]Backup, error) {
	pattern := filepath.Join(s.BackupDir, filepath.Base(s.Path)+".*.bak")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("listing backups: %w", err)
	}

	backups := make([]Backup, 0, len(matches))
	for _, match := range matches {
		backup, err := OpenBackup(match)
		if err != nil {
			continue
		}
		backups = append(backups, backup)
	}
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Manifest.CreatedAt.Before(backups[j].Manifest.CreatedAt)
	})
	return backups, nil
}

// LatestBackup returns the most recent backup.
func (s *Store) LatestBackup() (Backup, error) {
	backups, err := s.ListBackups()
	if err != nil {
		return Backup{}, err
	}
	if len(backups) == 0 {
		return Backup{}, fmt.Errorf("no backups found in %s", s.BackupDir)
	}
	return backups[len(backups)-1], nil
}

func manifestPath(backupPath string) string {
	return backupPath + ".manifest.json"
}
