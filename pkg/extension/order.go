package extension

import (
	"strings"

	"github.com/modfold/modfold/pkg/errors"
	"github.com/modfold/modfold/pkg/logging"
)

// Order computes the load order over enabled, non-ignored extensions so
// that every dependency of an extension precedes it.
//
// Referenced-but-absent dependency ids are pre-seeded as phantom placed
// entries: a missing hard dependency is logged as a warning and treated
// as satisfied, so dependents are never starved by an uninstalled
// companion. Exceeding the iteration bound (a true cycle) is a fatal
// error, distinct from the missing-dependency warning.
func Order(exts []*Extension) ([]*Extension, error) {
	logger := logging.GetLogger("extension.order")

	// Duplicate ids are a known failure mode to tolerate: warn and let
	// the first-encountered extension stand for the id.
	candidates := make([]*Extension, 0, len(exts))
	byID := make(map[string]*Extension)
	for _, e := range exts {
		if !e.Enabled || e.Ignored {
			continue
		}
		if prev, dup := byID[e.ID()]; dup {
			logger.Warn().
				Str("id", e.ID()).
				Str("kept", prev.Folder).
				Str("dropped", e.Folder).
				Msg("Duplicate extension id, first encountered wins")
			continue
		}
		byID[e.ID()] = e
		candidates = append(candidates, e)
	}

	placed := make(map[string]bool)
	for _, e := range candidates {
		for _, dep := range e.Descriptor.Dependencies {
			if _, present := byID[dep.ID]; present || placed[dep.ID] {
				continue
			}
			if !dep.Optional {
				logger.Warn().
					Str("extension", e.ID()).
					Str("dependency", dep.ID).
					Msg("Hard dependency not available, treating as satisfied")
			}
			placed[dep.ID] = true
		}
	}

	ordered := make([]*Extension, 0, len(candidates))
	remaining := candidates
	bound := len(candidates) + 1
	for round := 0; len(remaining) > 0 && round < bound; round++ {
		var next []*Extension
		for _, e := range remaining {
			if depsPlaced(e, placed) {
				placed[e.ID()] = true
				ordered = append(ordered, e)
			} else {
				next = append(next, e)
			}
		}
		remaining = next
	}

	if len(remaining) > 0 {
		stalled := make([]string, 0, len(remaining))
		for _, e := range remaining {
			stalled = append(stalled, e.ID())
		}
		return nil, errors.Newf(errors.ErrDepResolve,
			"dependency cycle or starvation among extensions: %s",
			strings.Join(stalled, ", "))
	}

	logger.Debug().Int("extensions", len(ordered)).Msg("Computed load order")
	return ordered, nil
}

func depsPlaced(e *Extension, placed map[string]bool) bool {
	for _, dep := range e.Descriptor.Dependencies {
		if !placed[dep.ID] {
			return false
		}
	}
	return true
}
