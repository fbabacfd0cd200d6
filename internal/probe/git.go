package probe

import (
	"fmt"
	"os"
	"sort"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// probeRepository inspects one repository. Any underlying failure is
// recorded on the returned state; it never panics past this boundary.
func (p *Prober) probeRepository(name, path string) GitState {
	st := GitState{Name: name, Path: path}

	if _, err := os.Stat(path); err != nil {
		st.Err = fmt.Sprintf("path not found: %s", path)
		return st
	}

	repo, err := git.PlainOpen(path)
	if err != nil {
		st.Err = "not a git repository or git state unreadable"
		return st
	}

	head, err := repo.Head()
	if err != nil {
		st.Err = fmt.Sprintf("resolving HEAD: %v", err)
		return st
	}

	st.Available = true
	st.HeadFull = head.Hash().String()
	st.Head = shortHash(st.HeadFull)
	if head.Name().IsBranch() {
		st.Branch = head.Name().Short()
	} else {
		st.Branch = "HEAD" // detached
	}

	// Worktree status: untracked, then worktree-modified, then staged,
	// mirroring porcelain's two-character prefix reading.
	if wt, err := repo.Worktree(); err == nil {
		if status, err := wt.Status(); err == nil {
			for file, fs := range status {
				switch {
				case fs.Staging == git.Untracked && fs.Worktree == git.Untracked:
					st.Untracked = append(st.Untracked, file)
				case fs.Worktree != git.Unmodified:
					st.Modified = append(st.Modified, file)
				case fs.Staging != git.Unmodified:
					st.Staged = append(st.Staged, file)
				}
			}
			sort.Strings(st.Untracked)
			sort.Strings(st.Modified)
			sort.Strings(st.Staged)
		}
	}

	if st.Branch != "HEAD" {
		if ahead, behind, ok := aheadBehind(repo, st.Branch, head.Hash()); ok {
			st.Ahead, st.Behind, st.HasUpstream = ahead, behind, true
		}
	}

	return st
}

// aheadBehind counts commits on the local branch not on origin/<branch>
// and vice versa. Returns ok=false when no same-named origin branch exists.
func aheadBehind(repo *git.Repository, branch string, local plumbing.Hash) (ahead, behind int, ok bool) {
	remoteRef, err := repo.Reference(plumbing.NewRemoteReferenceName("origin", branch), true)
	if err != nil {
		return 0, 0, false
	}

	localSet, err := ancestorSet(repo, local)
	if err != nil {
		return 0, 0, false
	}
	remoteSet, err := ancestorSet(repo, remoteRef.Hash())
	if err != nil {
		return 0, 0, false
	}

	for h := range localSet {
		if _, shared := remoteSet[h]; !shared {
			ahead++
		}
	}
	for h := range remoteSet {
		if _, shared := localSet[h]; !shared {
			behind++
		}
	}
	return ahead, behind, true
}

// ancestorSet collects every commit reachable from h.
func ancestorSet(repo *git.Repository, h plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	start, err := repo.CommitObject(h)
	if err != nil {
		return nil, err
	}

	set := make(map[plumbing.Hash]struct{})
	iter := object.NewCommitPreorderIter(start, nil, nil)
	err = iter.ForEach(func(c *object.Commit) error {
		set[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

func shortHash(full string) string {
	if len(full) > 7 {
		return full[:7]
	}
	return full
}
