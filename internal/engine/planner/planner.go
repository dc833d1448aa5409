// Package planner computes parallel execution plans for build stages.
package planner

import (
	"github.com/ronmichel/rockpile/internal/core/domain"
)

// Wave is a set of stages with no dependency relation between them. All
// stages of a wave can run concurrently once every earlier wave finished.
type Wave []string

// Plan partitions the topology's stages into waves. Within a wave, stages
// keep their declaration order. Stages caught in a dependency cycle never
// become ready and are omitted, so the caller should validate first.
func Plan(t *domain.Topology) []Wave {
	deps := t.StageDeps()

	inDegree := make(map[domain.InternedString]int, len(deps))
	dependents := make(map[domain.InternedString][]domain.InternedString, len(deps))
	var order []domain.InternedString
	for _, s := range t.Stages() {
		order = append(order, s.Name)
		inDegree[s.Name] = len(deps[s.Name])
		for _, dep := range deps[s.Name] {
			dependents[dep] = append(dependents[dep], s.Name)
		}
	}

	var ready []domain.InternedString
	for _, name := range order {
		if inDegree[name] == 0 {
			ready = append(ready, name)
		}
	}

	var waves []Wave
	for len(ready) > 0 {
		wave := make(Wave, 0, len(ready))
		var next []domain.InternedString
		for _, name := range ready {
			wave = append(wave, name.String())
			for _, dep := range dependents[name] {
				inDegree[dep]--
				if inDegree[dep] == 0 {
					next = append(next, dep)
				}
			}
		}
		waves = append(waves, wave)

		// Restore declaration order for the next wave. Dependents were
		// appended in release order, which is not stable.
		ready = ready[:0]
		nextSet := make(map[domain.InternedString]struct{}, len(next))
		for _, name := range next {
			nextSet[name] = struct{}{}
		}
		for _, name := range order {
			if _, ok := nextSet[name]; ok {
				ready = append(ready, name)
			}
		}
	}

	return waves
}
