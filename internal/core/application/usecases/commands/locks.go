package commands

import (
	"context"
	"slices"

	"courier/internal/core/domain/model/user"
	"courier/internal/core/ports"
)

// lockUsers row-locks the named users in lexical order so two transfers over
// the same pair can never deadlock. The result is keyed by username.
func lockUsers(ctx context.Context, repo ports.UserRepository, usernames ...string) (map[string]*user.User, error) {
	ordered := slices.Clone(usernames)
	slices.Sort(ordered)
	ordered = slices.Compact(ordered)

	locked := make(map[string]*user.User, len(ordered))
	for _, username := range ordered {
		u, err := repo.GetForUpdate(ctx, username)
		if err != nil {
			return nil, err
		}
		locked[username] = u
	}
	return locked, nil
}
