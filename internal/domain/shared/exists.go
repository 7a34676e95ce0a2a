package shared

import "context"

// ExistsFunc reports whether an entity is persisted. Repositories expose
// their existence checks in this shape so the validation services can share
// one check-or-fail implementation instead of re-implementing it per
// aggregate.
type ExistsFunc func(ctx context.Context) (bool, error)

// CheckExists runs the existence check and returns missing when the entity
// is absent. Repository errors pass through unchanged.
func CheckExists(ctx context.Context, exists ExistsFunc, missing error) error {
	found, err := exists(ctx)
	if err != nil {
		return err
	}
	if !found {
		return missing
	}
	return nil
}
