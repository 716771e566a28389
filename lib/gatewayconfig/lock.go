// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package gatewayconfig

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// lock takes a blocking exclusive advisory lock on a sidecar lock
// file. Locking a sidecar rather than the document itself keeps the
// lock stable across the atomic rename that replaces the document.
func (s *Store) lock() (unlock func(), err error) {
	path := s.Path + ".lock"
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening lock file %s: %w", path, err)
	}
	if err := unix.Flock(int(file.Fd()), unix.LOCK_EX); err != nil {
		file.Close()
		return nil, fmt.Errorf("locking %s: %w", path, err)
	}
	return func() {
		unix.Flock(int(file.Fd()), unix.LOCK_UN)
		file.Close()
	}, nil
}
