package ports

import "context"

// Vault is the host file-system boundary. All paths are vault-root-relative
// and slash-separated; implementations normalize on the way in.
type Vault interface {
	// Normalize cleans a path into vault-relative slash form.
	Normalize(path string) string

	// Exists reports whether a file or folder exists at path.
	Exists(ctx context.Context, path string) (bool, error)

	// FolderExists reports whether path exists and is a folder.
	FolderExists(ctx context.Context, path string) (bool, error)

	// CreateFolder creates a folder (and missing parents) at path.
	CreateFolder(ctx context.Context, path string) error

	// ReadBinary returns the full contents of the file at path.
	ReadBinary(ctx context.Context, path string) ([]byte, error)

	// WriteBinary overwrites the file at path wholesale. No partial or
	// offset writes are assumed to exist on the host.
	WriteBinary(ctx context.Context, path string, data []byte) error
}

// ChangeHandler receives the host's file-change notifications. Events carry
// no ordering or delivery guarantees; a write by this process may or may not
// produce a notification.
type ChangeHandler interface {
	HandleFileChange(ctx context.Context, path string, deleted bool) error
}

// VaultWatcher forwards host change notifications to a handler until ctx is
// cancelled.
type VaultWatcher interface {
	Watch(ctx context.Context, handler ChangeHandler) error
}
