// pkg/git/sync_test.go

package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSourceRepo builds a local repository with a single commit to clone from.
func newSourceRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("relay\n"), 0644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("README.md")
	require.NoError(t, err)

	_, err = wt.Commit("initial", &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "test",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)

	return dir
}

func TestSyncClonesWhenAbsent(t *testing.T) {
	src := newSourceRepo(t)
	dst := filepath.Join(t.TempDir(), "checkout")

	res, err := Sync(context.Background(), src, "", dst)
	require.NoError(t, err)
	assert.True(t, res.Cloned)
	assert.NotEmpty(t, res.Commit)
	assert.FileExists(t, filepath.Join(dst, "README.md"))
}

func TestSyncPullsWhenPresent(t *testing.T) {
	src := newSourceRepo(t)
	dst := filepath.Join(t.TempDir(), "checkout")

	first, err := Sync(context.Background(), src, "", dst)
	require.NoError(t, err)
	require.True(t, first.Cloned)

	// Second run must take the update path and converge to the same tree.
	second, err := Sync(context.Background(), src, "", dst)
	require.NoError(t, err)
	assert.False(t, second.Cloned)
	assert.Equal(t, first.Commit, second.Commit)
}

func TestExists(t *testing.T) {
	src := newSourceRepo(t)
	assert.True(t, Exists(src))
	assert.False(t, Exists(t.TempDir()))
}

func TestCurrentCommit(t *testing.T) {
	src := newSourceRepo(t)
	commit, err := CurrentCommit(src)
	require.NoError(t, err)
	assert.Len(t, commit, 40)

	_, err = CurrentCommit(t.TempDir())
	assert.Error(t, err)
}
