package cliutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/erraggy/reportio/internal/fileutil"
)

// StdinPath is the special input path used to indicate reading from stdin.
const StdinPath = "-"

// MaxInputSize bounds how much of a single input is read.
const MaxInputSize = 64 << 20

// ErrInputTooLarge is returned when an input exceeds MaxInputSize.
var ErrInputTooLarge = errors.New("input exceeds maximum size")

// DisplayPath returns a display-friendly name for an input path.
// Returns "<stdin>" for StdinPath, otherwise the path as-is.
func DisplayPath(path string) string {
	if path == StdinPath {
		return "<stdin>"
	}
	return path
}

// ReadInput reads the file at path, or all of stdin when path is StdinPath.
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	var r io.Reader = stdin
	if path != StdinPath {
		f, err := os.Open(filepath.Clean(path))
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxInputSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", DisplayPath(path), err)
	}
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("reading %s: %w (%d bytes)", DisplayPath(path), ErrInputTooLarge, MaxInputSize)
	}
	return data, nil
}

// WriteOutput writes data to path with restrictive permissions, or to stdout
// when path is empty. Symlinks are never written through.
func WriteOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	cleaned := filepath.Clean(path)
	if err := RejectSymlink(cleaned); err != nil {
		return err
	}
	return os.WriteFile(cleaned, data, fileutil.OwnerReadWrite)
}

// RejectSymlink returns an error if path exists and is a symlink.
func RejectSymlink(path string) error {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("refusing to write to symlink: %s", path)
	}
	return nil
}

// CheckOutputPath rejects an output path that would overwrite one of the
// inputs.
func CheckOutputPath(output string, inputs []string) error {
	absOutput, err := filepath.Abs(output)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	for _, input := range inputs {
		if input == StdinPath {
			continue
		}
		absInput, err := filepath.Abs(input)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", input, err)
		}
		if absOutput == absInput {
			return fmt.Errorf("output file %s would overwrite input file %s", output, input)
		}
	}
	return nil
}
