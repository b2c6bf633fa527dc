package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FSMedium stores each collection as a JSON file under a root directory.
// Writes stream to a temp file and rename into place so readers never see
// a partial payload.
type FSMedium struct {
	root string
}

var _ Medium = (*FSMedium)(nil)

// NewFSMedium returns a filesystem-backed medium rooted at path, creating it
// if needed.
func NewFSMedium(root string) (*FSMedium, error) {
	if root == "" {
		root = "./fleetdata"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create root: %w", err)
	}
	return &FSMedium{root: root}, nil
}

func (m *FSMedium) Driver() Driver { return DriverFilesystem }

// sanitizeName forbids path traversal and separators in collection names.
func sanitizeName(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("empty collection name")
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid collection name %q", name)
	}
	return name, nil
}

func (m *FSMedium) pathFor(name string) (string, error) {
	n, err := sanitizeName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(m.root, n+".json"), nil
}

func (m *FSMedium) LoadCollection(ctx context.Context, name string) ([]byte, bool, error) {
	path, err := m.pathFor(name)
	if err != nil {
		return nil, false, err
	}
	payload, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", name, err)
	}
	return payload, true, nil
}

func (m *FSMedium) SaveCollection(ctx context.Context, name string, payload []byte) error {
	path, err := m.pathFor(name)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(m.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}

func (m *FSMedium) Close() error { return nil }

// Root returns the configured data directory.
func (m *FSMedium) Root() string { return m.root }
