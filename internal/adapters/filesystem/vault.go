package filesystem

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"ripasso/internal/ports"
)

// Vault implements ports.Vault on the local file system, rooted at the
// vault directory. Paths crossing the port are vault-relative and
// slash-separated regardless of platform.
type Vault struct {
	root string
}

// Ensure Vault implements the vault port
var _ ports.Vault = (*Vault)(nil)

// NewVault creates a vault rooted at root. A leading ~ expands to the home
// directory.
func NewVault(root string) *Vault {
	if strings.HasPrefix(root, "~") {
		home, _ := os.UserHomeDir()
		root = filepath.Join(home, root[1:])
	}
	return &Vault{root: root}
}

// Root returns the vault's absolute root directory.
func (v *Vault) Root() string { return v.root }

// Normalize cleans a path into vault-relative slash form.
func (v *Vault) Normalize(p string) string {
	p = filepath.ToSlash(p)
	if abs := filepath.ToSlash(v.root) + "/"; strings.HasPrefix(p, abs) {
		p = strings.TrimPrefix(p, abs)
	}
	p = strings.TrimPrefix(p, "/")
	return path.Clean(p)
}

// abs resolves a vault-relative path against the root.
func (v *Vault) abs(p string) string {
	return filepath.Join(v.root, filepath.FromSlash(v.Normalize(p)))
}

// Exists reports whether a file or folder exists at p.
func (v *Vault) Exists(_ context.Context, p string) (bool, error) {
	_, err := os.Stat(v.abs(p))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", p, err)
}

// FolderExists reports whether p exists and is a folder.
func (v *Vault) FolderExists(_ context.Context, p string) (bool, error) {
	info, err := os.Stat(v.abs(p))
	if err == nil {
		return info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", p, err)
}

// CreateFolder creates a folder and any missing parents at p.
func (v *Vault) CreateFolder(_ context.Context, p string) error {
	if err := os.MkdirAll(v.abs(p), 0755); err != nil {
		return fmt.Errorf("failed to create folder %s: %w", p, err)
	}
	return nil
}

// ReadBinary returns the full contents of the file at p.
func (v *Vault) ReadBinary(_ context.Context, p string) ([]byte, error) {
	data, err := os.ReadFile(v.abs(p))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return data, nil
}

// WriteBinary overwrites the file at p wholesale.
func (v *Vault) WriteBinary(_ context.Context, p string, data []byte) error {
	if err := os.WriteFile(v.abs(p), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", p, err)
	}
	return nil
}
