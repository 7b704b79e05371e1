package git

import (
	"errors"
	"fmt"
	"slices"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// RecentCommits returns up to limit commits reachable from HEAD, newest
// first, decorated with the local branches that point at them.
func (r *Repository) RecentCommits(limit int) ([]Commit, error) {
	head, err := r.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return []Commit{}, nil
		}
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	decorations, err := r.branchDecorations()
	if err != nil {
		return nil, err
	}

	iter, err := r.Log(&gogit.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	defer iter.Close()

	commits := []Commit{}
	err = iter.ForEach(func(c *object.Commit) error {
		if len(commits) >= limit {
			return storer.ErrStop
		}
		hash := c.Hash.String()
		commits = append(commits, Commit{
			Hash:     hash,
			Short:    hash[:7],
			Subject:  subjectOf(c.Message),
			Author:   c.Author.Name,
			Branches: decorations[c.Hash],
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk log: %w", err)
	}
	return commits, nil
}

func (r *Repository) branchDecorations() (map[plumbing.Hash][]string, error) {
	branches, err := r.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to get branches: %w", err)
	}
	out := make(map[plumbing.Hash][]string)
	err = branches.ForEach(func(ref *plumbing.Reference) error {
		out[ref.Hash()] = append(out[ref.Hash()], ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate branches: %w", err)
	}
	for _, names := range out {
		slices.Sort(names)
	}
	return out, nil
}
