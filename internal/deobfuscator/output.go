package deobfuscator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// maxOutputIndex bounds the search for a free output name.
const maxOutputIndex = 1 << 20

// NextOutputPath returns dir/<base>_<N><ext> for the smallest N >= 1 that
// does not exist yet.
func NextOutputPath(dir, base, ext string) (string, error) {
	for i := 1; i <= maxOutputIndex; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, i, ext))
		_, err := os.Stat(candidate)
		if errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("error checking output path %s: %w", candidate, err)
		}
	}
	return "", fmt.Errorf("no free output name for %s in %s", base, dir)
}

// WriteOutputWithIncrement creates dir if needed and writes content to the
// first free <base>_<N><ext> inside it, never overwriting an earlier run.
// It returns the path written.
func WriteOutputWithIncrement(dir, base, ext, content string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	for {
		path, err := NextOutputPath(dir, base, ext)
		if err != nil {
			return "", err
		}
		// O_EXCL keeps a concurrently created file from being overwritten.
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create output file %s: %w", path, err)
		}
		if _, err := f.WriteString(content); err != nil {
			f.Close()
			return "", fmt.Errorf("failed to write output file %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("failed to close output file %s: %w", path, err)
		}
		return path, nil
	}
}
