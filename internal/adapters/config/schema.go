package config

// DTOs for the four topology document sections. Field shapes mirror the
// on-disk document; defaults are applied when converting to domain entities.

// SourceSetDTO represents one source_sets entry.
type SourceSetDTO struct {
	Description string   `yaml:"description"`
	Submodules  []string `yaml:"submodules"`
}

// BuildStageDTO represents one build_stages entry.
type BuildStageDTO struct {
	Description    string   `yaml:"description"`
	ArtifactGroups []string `yaml:"artifact_groups"`
	Type           string   `yaml:"type"`
}

// ArtifactGroupDTO represents one artifact_groups entry.
type ArtifactGroupDTO struct {
	Description       string   `yaml:"description"`
	Type              string   `yaml:"type"`
	ArtifactGroupDeps []string `yaml:"artifact_group_deps"`
	SourceSets        []string `yaml:"source_sets"`
}

// ArtifactDTO represents one artifacts entry.
type ArtifactDTO struct {
	ArtifactGroup    string   `yaml:"artifact_group"`
	Type             string   `yaml:"type"`
	ArtifactDeps     []string `yaml:"artifact_deps"`
	Platform         string   `yaml:"platform"`
	FeatureName      string   `yaml:"feature_name"`
	FeatureGroup     string   `yaml:"feature_group"`
	DisablePlatforms []string `yaml:"disable_platforms"`
	PythonRequires   []string `yaml:"python_requires"`
}
