package storage

import (
	"context"
	"fmt"
	"log"
	"path"
	"sync"

	"ripasso/internal/ports"
)

// Repository owns the embedded engine instance and keeps it in lockstep
// with one serialized database file inside the vault. Every mutation is
// persisted immediately; external rewrites of the file replace the live
// engine wholesale. The repository's own writes echo back through the
// host's change notifications, so a self-write guard suppresses exactly the
// next notification after a save.
type Repository struct {
	vault   ports.Vault
	factory ports.EngineFactory
	path    string
	schema  string
	logger  *log.Logger

	// mu serializes mutate/save/reload and protects engine and selfWrite.
	// Saves never overlap, which is why a boolean guard is enough.
	mu        sync.Mutex
	engine    ports.Engine
	selfWrite bool
}

// Ensure Repository satisfies the upward and host-facing ports
var (
	_ ports.SnippetStore  = (*Repository)(nil)
	_ ports.ChangeHandler = (*Repository)(nil)
)

// Open loads the database file at dbPath, or initializes a fresh one if no
// file exists yet. Either way the resulting state is persisted before Open
// returns. Load failures are hard errors: falling back to an empty database
// would silently discard user data.
func Open(ctx context.Context, vault ports.Vault, factory ports.EngineFactory, dbPath, schema string, logger *log.Logger) (*Repository, error) {
	if logger == nil {
		logger = log.Default()
	}
	r := &Repository{
		vault:   vault,
		factory: factory,
		path:    vault.Normalize(dbPath),
		schema:  schema,
		logger:  logger,
	}

	exists, err := vault.Exists(ctx, r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to check database file: %w", err)
	}

	if exists {
		image, err := vault.ReadBinary(ctx, r.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read database file: %w", err)
		}
		eng, err := factory.Open(image)
		if err != nil {
			return nil, fmt.Errorf("failed to load database image: %w", err)
		}
		if err := eng.Exec(schema); err != nil {
			eng.Close()
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
		r.engine = eng
	} else {
		eng, err := factory.New()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize engine: %w", err)
		}
		if err := eng.Exec(schema); err != nil {
			eng.Close()
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
		r.engine = eng
	}

	// Persist right away: on the fresh path this creates the file, on the
	// load path it flushes any schema changes the DDL just made.
	if err := r.save(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Path returns the vault-relative database file path.
func (r *Repository) Path() string { return r.path }

// Query executes a read-only statement and returns its formatted rows.
// Engine errors degrade to an empty slice; see execSQL.
func (r *Repository) Query(ctx context.Context, query string, params ...any) []Row {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.execSQL(query, params)
}

// Mutate executes a statement and unconditionally persists the engine
// afterwards, so every mutation is immediately durable. A failed save means
// memory and disk have diverged, which is the one invariant this subsystem
// protects, so save errors propagate.
func (r *Repository) Mutate(ctx context.Context, query string, params ...any) ([]Row, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := r.execSQL(query, params)
	if err := r.save(ctx); err != nil {
		return rows, err
	}
	return rows, nil
}

// execSQL coerces parameters and executes one statement. Engine errors
// (bad SQL, constraint violations) are logged and degrade to an empty row
// set so a bad query never crashes the caller. The cost is that zero rows
// and a failed query look identical at this layer.
func (r *Repository) execSQL(query string, params []any) []Row {
	if r.engine == nil {
		r.logger.Printf("ripasso: query dropped: %v", ErrNotStarted)
		return []Row{}
	}
	res, err := r.engine.Query(query, Coerce(params))
	if err != nil {
		r.logger.Printf("ripasso: query failed: %v", err)
		return []Row{}
	}
	return FormatRows(res)
}

// save exports the engine's full byte image and overwrites the database
// file wholesale. The self-write guard is set before the write is issued,
// so it is observably armed before the host can deliver any notification
// for this write. Callers must hold r.mu.
func (r *Repository) save(ctx context.Context) error {
	image, err := r.engine.Serialize()
	if err != nil {
		return fmt.Errorf("failed to serialize database: %w", err)
	}

	r.selfWrite = true

	if dir := path.Dir(r.path); dir != "." && dir != "/" {
		ok, err := r.vault.FolderExists(ctx, dir)
		if err == nil && !ok {
			err = r.vault.CreateFolder(ctx, dir)
		}
		if err != nil {
			r.selfWrite = false
			return fmt.Errorf("failed to prepare database folder: %w", err)
		}
	}

	if err := r.vault.WriteBinary(ctx, r.path, image); err != nil {
		// The write never happened, so no echo is coming.
		r.selfWrite = false
		return fmt.Errorf("failed to write database file: %w", err)
	}
	return nil
}

// HandleFileChange is invoked by the host integration for every vault file
// event. Foreign paths are ignored, as are deletions (no auto-recreate).
// The first notification for our path after a save is presumed to be the
// echo of that save and only consumes the guard; any other notification
// means the file was rewritten externally, e.g. by file sync from another
// device, and the on-disk image replaces the live engine.
func (r *Repository) HandleFileChange(ctx context.Context, p string, deleted bool) error {
	if deleted || r.vault.Normalize(p) != r.path {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.selfWrite {
		r.selfWrite = false
		return nil
	}
	return r.reload(ctx)
}

// reload discards the live engine in favor of a brand-new instance built
// from the on-disk image. The old instance is replaced wholesale, never
// merged. Schema DDL is not re-applied here; only the startup load path
// does that. Callers must hold r.mu.
func (r *Repository) reload(ctx context.Context) error {
	image, err := r.vault.ReadBinary(ctx, r.path)
	if err != nil {
		return fmt.Errorf("failed to read database file: %w", err)
	}
	eng, err := r.factory.Open(image)
	if err != nil {
		return fmt.Errorf("failed to load database image: %w", err)
	}

	old := r.engine
	r.engine = eng
	if old != nil {
		if err := old.Close(); err != nil {
			r.logger.Printf("ripasso: failed to close replaced engine: %v", err)
		}
	}
	return nil
}

// Close releases the engine. The repository is unusable afterwards.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.engine == nil {
		return nil
	}
	err := r.engine.Close()
	r.engine = nil
	return err
}
