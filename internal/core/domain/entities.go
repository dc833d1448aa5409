package domain

// StageType classifies a build stage as architecture-neutral or fanned out
// per GPU architecture.
type StageType string

const (
	// StageGeneric is a stage built once, independent of target architecture.
	StageGeneric StageType = "generic"
	// StagePerArch is a stage built once per target architecture family.
	StagePerArch StageType = "per-arch"
)

// GroupType classifies an artifact group the same way StageType classifies
// stages.
type GroupType string

const (
	// GroupGeneric marks an architecture-neutral artifact group.
	GroupGeneric GroupType = "generic"
	// GroupPerArch marks a per-architecture artifact group.
	GroupPerArch GroupType = "per-arch"
)

// ArtifactType classifies an individual build output.
type ArtifactType string

const (
	// ArtifactTargetNeutral is an output independent of the GPU target.
	ArtifactTargetNeutral ArtifactType = "target-neutral"
	// ArtifactTargetSpecific is an output compiled for a specific GPU target.
	ArtifactTargetSpecific ArtifactType = "target-specific"
)

// Platform names an operating system an artifact can be restricted to or
// disabled on.
type Platform string

const (
	// PlatformLinux restricts an artifact to Linux.
	PlatformLinux Platform = "linux"
	// PlatformWindows restricts an artifact to Windows.
	PlatformWindows Platform = "windows"
)

// BuildStage represents one CI job. It consumes inbound artifacts and
// produces the artifacts of the groups it contains.
type BuildStage struct {
	Name           InternedString
	Description    string
	ArtifactGroups []InternedString
	Type           StageType
}

// ArtifactGroup is a named collection of related artifacts sharing
// build-graph position and source requirements.
type ArtifactGroup struct {
	Name        InternedString
	Description string
	Type        GroupType
	// GroupDeps names the artifact groups this group depends on.
	GroupDeps []InternedString
	// SourceSets names the source sets whose submodules this group builds from.
	SourceSets []InternedString
}

// Artifact is one discrete build output tracked by name.
type Artifact struct {
	Name InternedString
	// Group names the artifact group that owns this artifact.
	Group InternedString
	Type  ArtifactType
	// Deps names the artifacts this one depends on directly.
	Deps []InternedString
	// Platform restricts the artifact to one platform; empty means all.
	Platform Platform
	// FeatureName overrides the derived build-system feature name.
	FeatureName string
	// FeatureGroup overrides the derived build-system feature group.
	FeatureGroup string
	// DisablePlatforms lists platforms on which the artifact is disabled.
	DisablePlatforms []Platform
	// PythonRequires lists pip requirement strings the artifact's packaging needs.
	PythonRequires []string
}
