package actors

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// Write replaces the named file in the output directory with b.
func Write(config RunConfig, name string, b []byte) (string, error) {
	path := config.OutputPath(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err = io.Copy(f, bytes.NewReader(b)); err != nil {
		return "", err
	}
	return path, nil
}
