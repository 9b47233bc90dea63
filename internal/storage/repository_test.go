package storage

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ripasso/internal/ports"
)

// fakeEngine records everything executed against it and answers queries
// with one row carrying its own id, so tests can tell engine instances
// apart through the repository's public surface.
type fakeEngine struct {
	id       int
	scripts  []string
	queries  []string
	args     [][]driver.Value
	queryErr error
	closed   bool
}

func (e *fakeEngine) Query(query string, args []driver.Value) (*ports.Result, error) {
	e.queries = append(e.queries, query)
	e.args = append(e.args, args)
	if e.queryErr != nil {
		return nil, e.queryErr
	}
	return &ports.Result{Columns: []string{"engine"}, Values: [][]any{{int64(e.id)}}}, nil
}

func (e *fakeEngine) Exec(script string) error {
	e.scripts = append(e.scripts, script)
	return nil
}

func (e *fakeEngine) Serialize() ([]byte, error) {
	return []byte(fmt.Sprintf("image-%d", e.id)), nil
}

func (e *fakeEngine) Close() error {
	e.closed = true
	return nil
}

type fakeFactory struct {
	engines    []*fakeEngine
	openImages [][]byte
}

func (f *fakeFactory) New() (ports.Engine, error) {
	e := &fakeEngine{id: len(f.engines) + 1}
	f.engines = append(f.engines, e)
	return e, nil
}

func (f *fakeFactory) Open(image []byte) (ports.Engine, error) {
	f.openImages = append(f.openImages, image)
	return f.New()
}

type fakeVault struct {
	files    map[string][]byte
	folders  map[string]bool
	writeErr error
	writes   int
}

func newFakeVault() *fakeVault {
	return &fakeVault{files: map[string][]byte{}, folders: map[string]bool{}}
}

func (v *fakeVault) Normalize(p string) string {
	return path.Clean(strings.TrimPrefix(p, "/"))
}

func (v *fakeVault) Exists(_ context.Context, p string) (bool, error) {
	if _, ok := v.files[p]; ok {
		return true, nil
	}
	return v.folders[p], nil
}

func (v *fakeVault) FolderExists(_ context.Context, p string) (bool, error) {
	return v.folders[p], nil
}

func (v *fakeVault) CreateFolder(_ context.Context, p string) error {
	v.folders[p] = true
	return nil
}

func (v *fakeVault) ReadBinary(_ context.Context, p string) ([]byte, error) {
	data, ok := v.files[p]
	if !ok {
		return nil, errors.New("file not found: " + p)
	}
	return data, nil
}

func (v *fakeVault) WriteBinary(_ context.Context, p string, data []byte) error {
	if v.writeErr != nil {
		return v.writeErr
	}
	v.writes++
	v.files[p] = data
	return nil
}

func quietLogger() *log.Logger {
	return log.New(&strings.Builder{}, "", 0)
}

const dbPath = ".ripasso/ripasso.db"

func TestOpenFreshInitializesAndPersists(t *testing.T) {
	ctx := context.Background()
	vault := newFakeVault()
	factory := &fakeFactory{}

	repo, err := Open(ctx, vault, factory, dbPath, Schema, quietLogger())
	require.NoError(t, err)

	require.Len(t, factory.engines, 1)
	assert.Equal(t, []string{Schema}, factory.engines[0].scripts)
	assert.Empty(t, factory.openImages)
	assert.Equal(t, []byte("image-1"), vault.files[dbPath])
	assert.True(t, vault.folders[".ripasso"])
	assert.Equal(t, dbPath, repo.Path())
}

func TestOpenExistingLoadsImageAndReappliesSchema(t *testing.T) {
	ctx := context.Background()
	vault := newFakeVault()
	vault.files[dbPath] = []byte("synced-image")
	factory := &fakeFactory{}

	_, err := Open(ctx, vault, factory, dbPath, Schema, quietLogger())
	require.NoError(t, err)

	require.Len(t, factory.openImages, 1)
	assert.Equal(t, []byte("synced-image"), factory.openImages[0])
	// DDL re-applied on load, then the result flushed back to disk.
	assert.Equal(t, []string{Schema}, factory.engines[0].scripts)
	assert.Equal(t, []byte("image-1"), vault.files[dbPath])
}

func TestQueryFormatsRowsAndDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	vault := newFakeVault()
	factory := &fakeFactory{}
	repo, err := Open(ctx, vault, factory, dbPath, Schema, quietLogger())
	require.NoError(t, err)

	writesBefore := vault.writes
	rows := repo.Query(ctx, "SELECT * FROM snippet WHERE dismissed = ?1", false)

	assert.Equal(t, []Row{{"engine": int64(1)}}, rows)
	assert.Equal(t, writesBefore, vault.writes)
	// Parameters reach the engine coerced.
	assert.Equal(t, []driver.Value{int64(0)}, factory.engines[0].args[0])
}

func TestMutatePersistsAfterExecution(t *testing.T) {
	ctx := context.Background()
	vault := newFakeVault()
	factory := &fakeFactory{}
	repo, err := Open(ctx, vault, factory, dbPath, Schema, quietLogger())
	require.NoError(t, err)

	writesBefore := vault.writes
	rows, err := repo.Mutate(ctx, "DELETE FROM snippet")
	require.NoError(t, err)

	assert.Equal(t, []Row{{"engine": int64(1)}}, rows)
	assert.Equal(t, writesBefore+1, vault.writes)
}

func TestEngineErrorsDegradeToEmptyRows(t *testing.T) {
	ctx := context.Background()
	vault := newFakeVault()
	factory := &fakeFactory{}
	repo, err := Open(ctx, vault, factory, dbPath, Schema, quietLogger())
	require.NoError(t, err)

	factory.engines[0].queryErr = errors.New("no such table: nope")

	rows := repo.Query(ctx, "SELECT * FROM nope")
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	// Mutate still persists: the statement failed but the policy is to
	// never crash the caller on a bad query.
	rows, err = repo.Mutate(ctx, "DELETE FROM nope")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSelfWriteEchoIsSuppressedOnce(t *testing.T) {
	ctx := context.Background()
	vault := newFakeVault()
	factory := &fakeFactory{}
	repo, err := Open(ctx, vault, factory, dbPath, Schema, quietLogger())
	require.NoError(t, err)

	// Open ended with a save, so the guard is armed. The echo must not
	// replace the engine.
	require.NoError(t, repo.HandleFileChange(ctx, dbPath, false))
	assert.Len(t, factory.engines, 1)
	assert.Empty(t, factory.openImages)

	// A second notification has no save behind it: genuinely external,
	// reload from disk into a brand-new engine.
	require.NoError(t, repo.HandleFileChange(ctx, dbPath, false))
	require.Len(t, factory.engines, 2)
	assert.Equal(t, vault.files[dbPath], factory.openImages[0])
	assert.True(t, factory.engines[0].closed)

	rows := repo.Query(ctx, "SELECT * FROM snippet")
	assert.Equal(t, []Row{{"engine": int64(2)}}, rows)
}

func TestMutateArmsGuardForItsEcho(t *testing.T) {
	ctx := context.Background()
	vault := newFakeVault()
	factory := &fakeFactory{}
	repo, err := Open(ctx, vault, factory, dbPath, Schema, quietLogger())
	require.NoError(t, err)

	// Drain the guard armed by Open's initial save.
	require.NoError(t, repo.HandleFileChange(ctx, dbPath, false))

	_, err = repo.Mutate(ctx, "DELETE FROM snippet")
	require.NoError(t, err)

	require.NoError(t, repo.HandleFileChange(ctx, dbPath, false))
	assert.Len(t, factory.engines, 1, "echo of own mutate must not reload")
}

func TestForeignPathsAndDeletionsAreIgnored(t *testing.T) {
	ctx := context.Background()
	vault := newFakeVault()
	factory := &fakeFactory{}
	repo, err := Open(ctx, vault, factory, dbPath, Schema, quietLogger())
	require.NoError(t, err)

	require.NoError(t, repo.HandleFileChange(ctx, "notes/other.md", false))
	require.NoError(t, repo.HandleFileChange(ctx, dbPath, true))

	// Neither event consumed the guard or reloaded.
	assert.Len(t, factory.engines, 1)
	require.NoError(t, repo.HandleFileChange(ctx, dbPath, false))
	assert.Len(t, factory.engines, 1, "guard was still armed from Open")
}

func TestSaveFailurePropagatesAndClearsGuard(t *testing.T) {
	ctx := context.Background()
	vault := newFakeVault()
	factory := &fakeFactory{}
	repo, err := Open(ctx, vault, factory, dbPath, Schema, quietLogger())
	require.NoError(t, err)

	// Drain the guard, then make the next save fail.
	require.NoError(t, repo.HandleFileChange(ctx, dbPath, false))
	vault.writeErr = errors.New("disk full")

	_, err = repo.Mutate(ctx, "DELETE FROM snippet")
	require.Error(t, err)

	// The failed write produces no echo, so the guard must not eat the
	// next real notification.
	vault.writeErr = nil
	require.NoError(t, repo.HandleFileChange(ctx, dbPath, false))
	assert.Len(t, factory.engines, 2, "notification after failed save must reload")
}

func TestReloadReplacesEngineWholesale(t *testing.T) {
	ctx := context.Background()
	vault := newFakeVault()
	factory := &fakeFactory{}
	repo, err := Open(ctx, vault, factory, dbPath, Schema, quietLogger())
	require.NoError(t, err)
	require.NoError(t, repo.HandleFileChange(ctx, dbPath, false))

	// Simulate another device rewriting the file.
	vault.files[dbPath] = []byte("remote-image")
	require.NoError(t, repo.HandleFileChange(ctx, dbPath, false))

	require.Len(t, factory.openImages, 1)
	assert.Equal(t, []byte("remote-image"), factory.openImages[0])
	assert.True(t, factory.engines[0].closed)
	// Reload does not re-apply schema DDL; only startup load does.
	assert.Empty(t, factory.engines[1].scripts)
}

func TestQueryAfterCloseDegrades(t *testing.T) {
	ctx := context.Background()
	vault := newFakeVault()
	factory := &fakeFactory{}
	repo, err := Open(ctx, vault, factory, dbPath, Schema, quietLogger())
	require.NoError(t, err)

	require.NoError(t, repo.Close())

	rows := repo.Query(ctx, "SELECT * FROM snippet")
	assert.Empty(t, rows)
}
