// Package registry discovers model weight files on disk and wraps them as
// loadable resources for the device-memory manager.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"prepd/pkg/types"
)

// weight-file extensions the scanner recognizes.
var weightExts = map[string]struct{}{
	".safetensors": {},
	".ckpt":        {},
	".gguf":        {},
}

// FileResource is a model file treated as a loadable resource. Its device
// footprint is the file size on disk; there is no transient state to clean.
type FileResource struct {
	ID   string
	Path string
	size uint64
}

func (r *FileResource) MemorySize() uint64 { return r.size }
func (r *FileResource) Name() string       { return r.ID }

// LoadDir scans a directory for weight files and builds a registry from the
// filenames. The ID is the full filename including extension.
func LoadDir(dir string) ([]*FileResource, error) {
	base, err := expandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var out []*FileResource
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if _, ok := weightExts[strings.ToLower(filepath.Ext(name))]; !ok {
			continue
		}
		p := filepath.Join(abs, name)
		fi, err := os.Stat(p)
		if err != nil {
			continue
		}
		size := uint64(fi.Size())
		if size == 0 {
			// Unknown size must not bypass budget checks.
			size = 1
		}
		out = append(out, &FileResource{ID: name, Path: p, size: size})
	}
	return out, nil
}

// Models converts the scanned resources into wire DTOs.
func Models(resources []*FileResource) []types.Model {
	out := make([]types.Model, 0, len(resources))
	for _, r := range resources {
		out = append(out, types.Model{ID: r.ID, Name: r.ID, Path: r.Path, SizeBytes: r.MemorySize()})
	}
	return out
}

// expandHome expands a leading '~' to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}
