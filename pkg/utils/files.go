// Package utils holds the file helpers the audio converter uses to stage
// ffmpeg output before a recording is measured.
package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// MakeDir creates the staging directory and any missing parents.
func MakeDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// StagedPaths returns where a mono conversion of input lands in dir, and the
// temporary file ffmpeg writes to before it is moved there.
func StagedPaths(dir, input string) (final, tmp string) {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	final = filepath.Join(dir, base+".mono.wav")
	return final, final + ".tmp.wav"
}

// DeleteFile removes a converted copy. A file that is already gone is not an
// error.
func DeleteFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// MoveFile publishes a finished conversion, replacing any previous copy.
func MoveFile(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to move file from %s to %s: %w", src, dst, err)
	}
	return nil
}
