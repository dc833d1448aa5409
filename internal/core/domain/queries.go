package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// ArtifactsInGroup returns the artifacts owned by the named group, in
// declaration order. Unknown group names are a caller error.
func (t *Topology) ArtifactsInGroup(group string) ([]Artifact, error) {
	name := NewInternedString(group)
	if _, ok := t.groups[name]; !ok {
		return nil, zerr.With(ErrGroupNotFound, "artifact_group", group)
	}
	return t.artifactsOwnedBy(name), nil
}

// artifactsOwnedBy is the lenient variant used inside graph walks, where a
// dangling group reference is a validation finding rather than a crash.
func (t *Topology) artifactsOwnedBy(group InternedString) []Artifact {
	var out []Artifact
	for _, name := range t.artifactOrder {
		if a := t.artifacts[name]; a.Group == group {
			out = append(out, a)
		}
	}
	return out
}

// ProducedArtifacts returns the names of all artifacts a stage is
// responsible for building: every artifact of every group the stage contains.
func (t *Topology) ProducedArtifacts(stage string) (NameSet, error) {
	s, err := t.Stage(stage)
	if err != nil {
		return nil, err
	}

	produced := make(NameSet)
	for _, group := range s.ArtifactGroups {
		for _, a := range t.artifactsOwnedBy(group) {
			produced.Add(a.Name)
		}
	}
	return produced, nil
}

// InboundArtifacts returns the names of all artifacts a stage must obtain
// (built elsewhere or fetched) before it can run. This is what CI uses to
// decide which artifacts to pull from the artifact store ahead of a stage.
//
// The set is the union of every artifact produced by the stage's dependent
// groups and the transitive artifact_deps closure of the stage's own
// artifacts, minus whatever the stage itself produces.
func (t *Topology) InboundArtifacts(stage string) (NameSet, error) {
	s, err := t.Stage(stage)
	if err != nil {
		return nil, err
	}

	stageGroups := make(NameSet)
	for _, group := range s.ArtifactGroups {
		stageGroups.Add(group)
	}

	inbound := make(NameSet)

	// Everything produced by the groups this stage's groups depend on.
	// Dangling references are skipped here; the validator reports them.
	for group := range stageGroups {
		g, ok := t.groups[group]
		if !ok {
			continue
		}
		for _, depGroup := range g.GroupDeps {
			for _, a := range t.artifactsOwnedBy(depGroup) {
				inbound.Add(a.Name)
			}
		}
	}

	// Direct and transitive artifact_deps of the stage's own artifacts.
	for _, name := range t.artifactOrder {
		a := t.artifacts[name]
		if !stageGroups.Has(a.Group) {
			continue
		}
		for _, dep := range a.Deps {
			inbound.Add(dep)
			t.collectTransitiveDeps(dep, inbound)
		}
	}

	// A stage never fetches what it builds itself.
	produced, err := t.ProducedArtifacts(stage)
	if err != nil {
		return nil, err
	}
	for name := range produced {
		delete(inbound, name)
	}

	return inbound, nil
}

// collectTransitiveDeps adds every transitive dependency of the named
// artifact to collected. Marking a node before recursing keeps diamond
// patterns linear: each artifact is expanded at most once.
func (t *Topology) collectTransitiveDeps(artifact InternedString, collected NameSet) {
	a, ok := t.artifacts[artifact]
	if !ok {
		return
	}
	for _, dep := range a.Deps {
		if !collected.Has(dep) {
			collected.Add(dep)
			t.collectTransitiveDeps(dep, collected)
		}
	}
}

// SubmodulesForSourceSet returns the submodules of the named source set in
// declaration order.
func (t *Topology) SubmodulesForSourceSet(name string) ([]Submodule, error) {
	s, err := t.SourceSet(name)
	if err != nil {
		return nil, err
	}
	return s.Submodules, nil
}

// SubmodulesForStage returns every submodule a stage's source checkout
// needs: the union over the stage's groups of their source sets' submodules,
// deduplicated by name with first-occurrence order preserved.
func (t *Topology) SubmodulesForStage(stage string) ([]Submodule, error) {
	s, err := t.Stage(stage)
	if err != nil {
		return nil, err
	}

	seen := make(NameSet)
	var out []Submodule
	for _, group := range s.ArtifactGroups {
		g, ok := t.groups[group]
		if !ok {
			continue
		}
		for _, setName := range g.SourceSets {
			set, ok := t.sourceSets[setName]
			if !ok {
				continue
			}
			for _, sub := range set.Submodules {
				if !seen.Has(sub.Name) {
					seen.Add(sub.Name)
					out = append(out, sub)
				}
			}
		}
	}
	return out, nil
}

// AllSubmodules returns every submodule referenced by any source set,
// deduplicated, in first-occurrence order.
func (t *Topology) AllSubmodules() []Submodule {
	seen := make(NameSet)
	var out []Submodule
	for _, name := range t.sourceSetOrder {
		for _, sub := range t.sourceSets[name].Submodules {
			if !seen.Has(sub.Name) {
				seen.Add(sub.Name)
				out = append(out, sub)
			}
		}
	}
	return out
}

// FeatureName returns the build-system feature name for an artifact: the
// explicit override if set, otherwise the artifact name uppercased with
// hyphens mapped to underscores.
func FeatureName(a Artifact) string {
	if a.FeatureName != "" {
		return a.FeatureName
	}
	return featureCase(a.Name.String())
}

// FeatureGroup returns the build-system feature group for an artifact,
// derived from its owning group unless overridden.
func FeatureGroup(a Artifact) string {
	if a.FeatureGroup != "" {
		return a.FeatureGroup
	}
	return featureCase(a.Group.String())
}

func featureCase(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// StageDeps derives the stage-level dependency relation: stage A depends on
// stage B when any of A's groups depends on a group contained in B. A group
// depending on a sibling group inside the same stage is not a stage-level
// dependency, so self-edges are dropped. The returned slices are deduplicated
// and keep first-encounter order, which is deterministic because groups are
// walked in declaration order.
func (t *Topology) StageDeps() map[InternedString][]InternedString {
	// Which stage contains each group.
	producer := make(map[InternedString]InternedString, len(t.groupOrder))
	for _, stageName := range t.stageOrder {
		for _, group := range t.stages[stageName].ArtifactGroups {
			producer[group] = stageName
		}
	}

	deps := make(map[InternedString][]InternedString, len(t.stageOrder))
	for _, stageName := range t.stageOrder {
		depSet := make(NameSet)
		var ordered []InternedString
		for _, group := range t.stages[stageName].ArtifactGroups {
			g, ok := t.groups[group]
			if !ok {
				continue
			}
			for _, depGroup := range g.GroupDeps {
				depStage, ok := producer[depGroup]
				if !ok || depStage == stageName || depSet.Has(depStage) {
					continue
				}
				depSet.Add(depStage)
				ordered = append(ordered, depStage)
			}
		}
		deps[stageName] = ordered
	}
	return deps
}

// BuildOrder returns a topological ordering of build stages: a stage appears
// after every stage it transitively depends on. Stages with no ordering
// constraint between them keep their declaration order, so generated output
// stays stable across runs.
func (t *Topology) BuildOrder() []string {
	deps := t.StageDeps()
	visited := make(NameSet)
	order := make([]string, 0, len(t.stageOrder))

	var visit func(stage InternedString)
	visit = func(stage InternedString) {
		if visited.Has(stage) {
			return
		}
		visited.Add(stage)
		for _, dep := range deps[stage] {
			visit(dep)
		}
		order = append(order, stage.String())
	}

	for _, stage := range t.stageOrder {
		visit(stage)
	}
	return order
}
