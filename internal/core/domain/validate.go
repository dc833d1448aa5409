package domain

import (
	"fmt"
	"regexp"
)

// Naming conventions enforced by Validate. Entity names are lowercase and
// hyphen-separated; feature overrides are uppercase and underscore-separated.
var (
	entityNameRe  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	featureNameRe = regexp.MustCompile(`^[A-Z0-9]+(_[A-Z0-9]+)*$`)
)

// Validate checks the whole topology for consistency and returns every
// problem found as a human-readable message. An empty slice means the
// topology is valid.
//
// Validate never fails fast: its purpose is exhaustive reporting so a
// configuration can be fixed in one pass. Structurally unreadable input is
// the loader's responsibility and never reaches this point.
func (t *Topology) Validate() []string {
	var errs []string

	errs = append(errs, t.checkNaming()...)
	errs = append(errs, t.checkEnums()...)
	errs = append(errs, t.checkReferences()...)

	// The two cycle checks run over independent graphs: an artifact-level
	// cycle must surface even when the owning groups are acyclic.
	errs = append(errs, t.checkCycles(t.groupOrder, func(name InternedString) []InternedString {
		if g, ok := t.groups[name]; ok {
			return g.GroupDeps
		}
		return nil
	}, "artifact group")...)

	errs = append(errs, t.checkCycles(t.artifactOrder, func(name InternedString) []InternedString {
		if a, ok := t.artifacts[name]; ok {
			return a.Deps
		}
		return nil
	}, "artifact")...)

	return errs
}

func (t *Topology) checkNaming() []string {
	var errs []string
	for _, stage := range t.Stages() {
		if !entityNameRe.MatchString(stage.Name.String()) {
			errs = append(errs, fmt.Sprintf(
				"Stage '%s' has an invalid name (expected lowercase hyphen-separated)", stage.Name))
		}
	}
	for _, group := range t.Groups() {
		if !entityNameRe.MatchString(group.Name.String()) {
			errs = append(errs, fmt.Sprintf(
				"Artifact group '%s' has an invalid name (expected lowercase hyphen-separated)", group.Name))
		}
	}
	for _, artifact := range t.Artifacts() {
		if !entityNameRe.MatchString(artifact.Name.String()) {
			errs = append(errs, fmt.Sprintf(
				"Artifact '%s' has an invalid name (expected lowercase hyphen-separated)", artifact.Name))
		}
		if artifact.FeatureName != "" && !featureNameRe.MatchString(artifact.FeatureName) {
			errs = append(errs, fmt.Sprintf(
				"Artifact '%s' has an invalid feature_name '%s' (expected uppercase underscore-separated)",
				artifact.Name, artifact.FeatureName))
		}
		if artifact.FeatureGroup != "" && !featureNameRe.MatchString(artifact.FeatureGroup) {
			errs = append(errs, fmt.Sprintf(
				"Artifact '%s' has an invalid feature_group '%s' (expected uppercase underscore-separated)",
				artifact.Name, artifact.FeatureGroup))
		}
	}
	return errs
}

func (t *Topology) checkEnums() []string {
	var errs []string
	for _, stage := range t.Stages() {
		if stage.Type != StageGeneric && stage.Type != StagePerArch {
			errs = append(errs, fmt.Sprintf("Stage '%s' has an invalid type '%s'", stage.Name, stage.Type))
		}
	}
	for _, group := range t.Groups() {
		if group.Type != GroupGeneric && group.Type != GroupPerArch {
			errs = append(errs, fmt.Sprintf("Artifact group '%s' has an invalid type '%s'", group.Name, group.Type))
		}
	}
	for _, artifact := range t.Artifacts() {
		if artifact.Type != ArtifactTargetNeutral && artifact.Type != ArtifactTargetSpecific {
			errs = append(errs, fmt.Sprintf("Artifact '%s' has an invalid type '%s'", artifact.Name, artifact.Type))
		}
		if artifact.Platform != "" && !validPlatform(artifact.Platform) {
			errs = append(errs, fmt.Sprintf("Artifact '%s' has an invalid platform '%s'", artifact.Name, artifact.Platform))
		}
		for _, p := range artifact.DisablePlatforms {
			if !validPlatform(p) {
				errs = append(errs, fmt.Sprintf("Artifact '%s' disables an invalid platform '%s'", artifact.Name, p))
			}
		}
	}
	return errs
}

func validPlatform(p Platform) bool {
	return p == PlatformLinux || p == PlatformWindows
}

func (t *Topology) checkReferences() []string {
	var errs []string
	for _, stage := range t.Stages() {
		for _, group := range stage.ArtifactGroups {
			if _, ok := t.groups[group]; !ok {
				errs = append(errs, fmt.Sprintf(
					"Stage '%s' references unknown artifact group '%s'", stage.Name, group))
			}
		}
	}
	for _, group := range t.Groups() {
		for _, dep := range group.GroupDeps {
			if _, ok := t.groups[dep]; !ok {
				errs = append(errs, fmt.Sprintf(
					"Artifact group '%s' depends on unknown group '%s'", group.Name, dep))
			}
		}
		for _, set := range group.SourceSets {
			if _, ok := t.sourceSets[set]; !ok {
				errs = append(errs, fmt.Sprintf(
					"Artifact group '%s' references unknown source set '%s'", group.Name, set))
			}
		}
	}
	for _, artifact := range t.Artifacts() {
		if artifact.Group.String() != "" {
			if _, ok := t.groups[artifact.Group]; !ok {
				errs = append(errs, fmt.Sprintf(
					"Artifact '%s' references unknown group '%s'", artifact.Name, artifact.Group))
			}
		}
		for _, dep := range artifact.Deps {
			if _, ok := t.artifacts[dep]; !ok {
				errs = append(errs, fmt.Sprintf(
					"Artifact '%s' depends on unknown artifact '%s'", artifact.Name, dep))
			}
		}
	}
	return errs
}

// checkCycles runs a depth-first search with an explicit stack over the
// dependency relation given by depsOf. On the first back-edge to a node on
// the current path it emits one "circular dependency" message for that root
// and abandons the branch; it does not enumerate every node in the cycle.
// Nodes left marked after a detection are deliberately not unwound, matching
// the one-report-per-unvisited-root behavior downstream tooling depends on.
func (t *Topology) checkCycles(
	roots []InternedString,
	depsOf func(InternedString) []InternedString,
	kind string,
) []string {
	var errs []string
	visited := make(NameSet)
	onPath := make(NameSet)

	type frame struct {
		node InternedString
		next int
	}

	for _, root := range roots {
		if visited.Has(root) {
			continue
		}
		visited.Add(root)
		onPath.Add(root)
		stack := []frame{{node: root}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			deps := depsOf(top.node)
			if top.next >= len(deps) {
				delete(onPath, top.node)
				stack = stack[:len(stack)-1]
				continue
			}

			dep := deps[top.next]
			top.next++

			switch {
			case !visited.Has(dep):
				visited.Add(dep)
				onPath.Add(dep)
				stack = append(stack, frame{node: dep})
			case onPath.Has(dep):
				errs = append(errs, fmt.Sprintf(
					"Circular dependency detected involving %s '%s'", kind, dep))
				stack = nil
			}
		}
	}
	return errs
}
