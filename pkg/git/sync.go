// pkg/git/sync.go
//
// Repository sync - clone if absent, fast-forward pull if present.

package git

import (
	"context"
	"errors"
	"os"

	cerr "github.com/cockroachdb/errors"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// SyncResult describes what a Sync call did.
type SyncResult struct {
	Cloned bool
	Commit string
	Branch string
}

// Exists reports whether dir already holds a git repository.
func Exists(dir string) bool {
	_, err := gogit.PlainOpen(dir)
	return err == nil
}

// Sync brings dir to the latest state of the remote branch: a fresh clone when
// the directory holds no repository, a fast-forward pull otherwise. Both paths
// converge to the same working tree. Local modifications make the pull fail
// rather than being silently discarded.
func Sync(ctx context.Context, url, branch, dir string) (*SyncResult, error) {
	log := otelzap.Ctx(ctx)

	repo, err := gogit.PlainOpen(dir)
	switch {
	case err == nil:
		log.Info("Repository present, pulling latest changes",
			zap.String("dir", dir), zap.String("branch", branch))
		return pull(ctx, repo, branch)

	case errors.Is(err, gogit.ErrRepositoryNotExists):
		log.Info("Cloning repository",
			zap.String("url", url), zap.String("dir", dir), zap.String("branch", branch))
		return clone(ctx, url, branch, dir)

	default:
		return nil, cerr.Wrapf(err, "open repository %s", dir)
	}
}

func clone(ctx context.Context, url, branch, dir string) (*SyncResult, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, cerr.Wrapf(err, "create %s", dir)
	}

	opts := &gogit.CloneOptions{
		URL:          url,
		SingleBranch: true,
	}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}

	repo, err := gogit.PlainCloneContext(ctx, dir, false, opts)
	if err != nil {
		return nil, cerr.Wrapf(err, "clone %s", url)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, cerr.Wrap(err, "resolve HEAD after clone")
	}
	return &SyncResult{Cloned: true, Commit: head.Hash().String(), Branch: branchName(head)}, nil
}

func pull(ctx context.Context, repo *gogit.Repository, branch string) (*SyncResult, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return nil, cerr.Wrap(err, "open worktree")
	}

	opts := &gogit.PullOptions{SingleBranch: true}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}

	if err := wt.PullContext(ctx, opts); err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return nil, cerr.Wrap(err, "pull")
	}

	head, err := repo.Head()
	if err != nil {
		return nil, cerr.Wrap(err, "resolve HEAD after pull")
	}
	return &SyncResult{Cloned: false, Commit: head.Hash().String(), Branch: branchName(head)}, nil
}

// CurrentCommit returns the HEAD commit of the repository at dir.
func CurrentCommit(dir string) (string, error) {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return "", cerr.Wrapf(err, "open repository %s", dir)
	}
	head, err := repo.Head()
	if err != nil {
		return "", cerr.Wrap(err, "resolve HEAD")
	}
	return head.Hash().String(), nil
}

func branchName(head *plumbing.Reference) string {
	if head.Name().IsBranch() {
		return head.Name().Short()
	}
	return ""
}
