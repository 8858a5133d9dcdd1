package gitx

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// CommitsSince returns one "<short-hash> <subject>" line per commit reachable
// from HEAD, oldest first. The walk stops at from when set, otherwise at the
// nearest tagged commit, whose tag name is returned as since.
func CommitsSince(repoRoot, from string) (since string, commits []string, err error) {
	repo, err := git.PlainOpen(repoRoot)
	if err != nil {
		return "", nil, fmt.Errorf("open repository: %w", err)
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	var stop plumbing.Hash
	tagged := map[plumbing.Hash][]string{}
	if from != "" {
		h, err := repo.ResolveRevision(plumbing.Revision(from))
		if err != nil {
			return "", nil, fmt.Errorf("resolve %s: %w", from, err)
		}
		stop, since = *h, from
	} else if tagged, err = tagTargets(repo); err != nil {
		return "", nil, err
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return "", nil, fmt.Errorf("git log: %w", err)
	}
	err = iter.ForEach(func(c *object.Commit) error {
		if c.Hash == stop {
			return storer.ErrStop
		}
		if names, ok := tagged[c.Hash]; ok {
			since = names[len(names)-1]
			return storer.ErrStop
		}
		commits = append(commits, c.Hash.String()[:7]+" "+subject(c.Message))
		return nil
	})
	if err != nil {
		return "", nil, fmt.Errorf("walk commits: %w", err)
	}

	slices.Reverse(commits)
	return since, commits, nil
}

// tagTargets maps commit hashes to the (sorted) names of tags pointing at them.
// Annotated tags are peeled to their commit.
func tagTargets(repo *git.Repository) (map[plumbing.Hash][]string, error) {
	refs, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	out := map[plumbing.Hash][]string{}
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		hash := ref.Hash()
		if tag, err := repo.TagObject(hash); err == nil {
			c, err := tag.Commit()
			if err != nil {
				return nil
			}
			hash = c.Hash
		}
		out[hash] = append(out[hash], ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	for _, names := range out {
		slices.Sort(names)
	}
	return out, nil
}

func subject(message string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(message), "\n")
	return strings.TrimSpace(first)
}
