// Package domain contains the core domain model for the build topology: the
// entities parsed from the topology document and the read-only graph queries
// CI tooling runs against them.
package domain

import "go.trai.ch/zerr"

// Topology is an immutable snapshot of the build topology document. It is
// populated once by the loader and then only queried; concurrent reads are
// safe without locking.
type Topology struct {
	sourceSets map[InternedString]SourceSet
	stages     map[InternedString]BuildStage
	groups     map[InternedString]ArtifactGroup
	artifacts  map[InternedString]Artifact

	// Declaration order of each section. Build-order tie-breaking and all
	// listing accessors follow it so generated output stays diff-stable.
	sourceSetOrder []InternedString
	stageOrder     []InternedString
	groupOrder     []InternedString
	artifactOrder  []InternedString
}

// NewTopology creates an empty Topology.
func NewTopology() *Topology {
	return &Topology{
		sourceSets: make(map[InternedString]SourceSet),
		stages:     make(map[InternedString]BuildStage),
		groups:     make(map[InternedString]ArtifactGroup),
		artifacts:  make(map[InternedString]Artifact),
	}
}

// AddSourceSet adds a source set, rejecting duplicate names.
func (t *Topology) AddSourceSet(s *SourceSet) error {
	if _, exists := t.sourceSets[s.Name]; exists {
		return zerr.With(ErrDuplicateEntity, "source_set", s.Name.String())
	}
	t.sourceSets[s.Name] = *s
	t.sourceSetOrder = append(t.sourceSetOrder, s.Name)
	return nil
}

// AddStage adds a build stage, rejecting duplicate names.
func (t *Topology) AddStage(s *BuildStage) error {
	if _, exists := t.stages[s.Name]; exists {
		return zerr.With(ErrDuplicateEntity, "build_stage", s.Name.String())
	}
	t.stages[s.Name] = *s
	t.stageOrder = append(t.stageOrder, s.Name)
	return nil
}

// AddGroup adds an artifact group, rejecting duplicate names.
func (t *Topology) AddGroup(g *ArtifactGroup) error {
	if _, exists := t.groups[g.Name]; exists {
		return zerr.With(ErrDuplicateEntity, "artifact_group", g.Name.String())
	}
	t.groups[g.Name] = *g
	t.groupOrder = append(t.groupOrder, g.Name)
	return nil
}

// AddArtifact adds an artifact, rejecting duplicate names.
func (t *Topology) AddArtifact(a *Artifact) error {
	if _, exists := t.artifacts[a.Name]; exists {
		return zerr.With(ErrDuplicateEntity, "artifact", a.Name.String())
	}
	t.artifacts[a.Name] = *a
	t.artifactOrder = append(t.artifactOrder, a.Name)
	return nil
}

// SourceSets returns all source sets in declaration order.
func (t *Topology) SourceSets() []SourceSet {
	out := make([]SourceSet, 0, len(t.sourceSetOrder))
	for _, name := range t.sourceSetOrder {
		out = append(out, t.sourceSets[name])
	}
	return out
}

// Stages returns all build stages in declaration order.
func (t *Topology) Stages() []BuildStage {
	out := make([]BuildStage, 0, len(t.stageOrder))
	for _, name := range t.stageOrder {
		out = append(out, t.stages[name])
	}
	return out
}

// Groups returns all artifact groups in declaration order.
func (t *Topology) Groups() []ArtifactGroup {
	out := make([]ArtifactGroup, 0, len(t.groupOrder))
	for _, name := range t.groupOrder {
		out = append(out, t.groups[name])
	}
	return out
}

// Artifacts returns all artifacts in declaration order.
func (t *Topology) Artifacts() []Artifact {
	out := make([]Artifact, 0, len(t.artifactOrder))
	for _, name := range t.artifactOrder {
		out = append(out, t.artifacts[name])
	}
	return out
}

// Stage looks up a build stage by name.
func (t *Topology) Stage(name string) (BuildStage, error) {
	s, ok := t.stages[NewInternedString(name)]
	if !ok {
		return BuildStage{}, zerr.With(ErrStageNotFound, "build_stage", name)
	}
	return s, nil
}

// Group looks up an artifact group by name.
func (t *Topology) Group(name string) (ArtifactGroup, error) {
	g, ok := t.groups[NewInternedString(name)]
	if !ok {
		return ArtifactGroup{}, zerr.With(ErrGroupNotFound, "artifact_group", name)
	}
	return g, nil
}

// Artifact looks up an artifact by name.
func (t *Topology) Artifact(name string) (Artifact, error) {
	a, ok := t.artifacts[NewInternedString(name)]
	if !ok {
		return Artifact{}, zerr.With(ErrArtifactNotFound, "artifact", name)
	}
	return a, nil
}

// SourceSet looks up a source set by name.
func (t *Topology) SourceSet(name string) (SourceSet, error) {
	s, ok := t.sourceSets[NewInternedString(name)]
	if !ok {
		return SourceSet{}, zerr.With(ErrSourceSetNotFound, "source_set", name)
	}
	return s, nil
}
