// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package xos provides extensions to the standard os package.
package xos

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data to a temporary file in the same directory as
// filePath and renames it into place, creating parent directories as needed.
//
// Readers never observe a partially written file.
func WriteFileAtomic(filePath string, data []byte) (retErr error) {
	dirPath := filepath.Dir(filePath)
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	file, err := os.CreateTemp(dirPath, "."+filepath.Base(filePath)+".*")
	if err != nil {
		return err
	}
	tempFilePath := file.Name()
	defer func() {
		if retErr != nil {
			retErr = errors.Join(retErr, os.Remove(tempFilePath))
		}
	}()
	if _, err := file.Write(data); err != nil {
		return errors.Join(err, file.Close())
	}
	if err := file.Close(); err != nil {
		return err
	}
	return os.Rename(tempFilePath, filePath)
}
