// Package config provides the topology document loader.
package config

import (
	"os"

	"github.com/ronmichel/rockpile/internal/core/domain"
	"github.com/ronmichel/rockpile/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// listFields names, per section, the fields that must be sequences when
// present. A scalar or mapping in one of these positions is a structural
// load error, not a validation finding.
var listFields = map[string]map[string]bool{
	"source_sets": {
		"submodules": true,
	},
	"build_stages": {
		"artifact_groups": true,
	},
	"artifact_groups": {
		"artifact_group_deps": true,
		"source_sets":         true,
	},
	"artifacts": {
		"artifact_deps":     true,
		"disable_platforms": true,
		"python_requires":   true,
	},
}

// FileConfigLoader implements ports.ConfigLoader for YAML topology documents.
type FileConfigLoader struct {
	log ports.Logger
}

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// NewLoader creates a FileConfigLoader.
func NewLoader(log ports.Logger) *FileConfigLoader {
	return &FileConfigLoader{log: log}
}

// Load reads the topology document at path.
func (l *FileConfigLoader) Load(path string) (*domain.Topology, error) {
	return Load(path)
}

// Load reads and parses a topology document. The document is decoded through
// yaml.Node rather than plain maps so that section entries keep their
// declaration order; build-order tie-breaking and generated output depend on
// it. Cross-references and cycles are not checked here — that is
// Topology.Validate's job.
func Load(path string) (*domain.Topology, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read topology document")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.Wrap(err, "failed to parse topology document")
	}

	t := domain.NewTopology()
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		// An empty document is a valid, empty topology.
		return t, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, zerr.With(zerr.New("topology document must be a mapping"), "path", path)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		section := root.Content[i].Value
		body := root.Content[i+1]

		var err error
		switch section {
		case "source_sets":
			err = loadSection(body, section, func(name string, node *yaml.Node) error {
				return addSourceSet(t, name, node)
			})
		case "build_stages":
			err = loadSection(body, section, func(name string, node *yaml.Node) error {
				return addStage(t, name, node)
			})
		case "artifact_groups":
			err = loadSection(body, section, func(name string, node *yaml.Node) error {
				return addGroup(t, name, node)
			})
		case "artifacts":
			err = loadSection(body, section, func(name string, node *yaml.Node) error {
				return addArtifact(t, name, node)
			})
		default:
			// Unrecognized sections (metadata, comments-as-data) are ignored.
		}
		if err != nil {
			return nil, err
		}
	}

	return t, nil
}

// loadSection iterates a section's name→record mapping in document order.
func loadSection(body *yaml.Node, section string, add func(string, *yaml.Node) error) error {
	if body.Kind == 0 || body.Tag == "!!null" {
		return nil
	}
	if body.Kind != yaml.MappingNode {
		return zerr.With(zerr.New("section must be a mapping"), "section", section)
	}
	for i := 0; i+1 < len(body.Content); i += 2 {
		name := body.Content[i].Value
		record := body.Content[i+1]
		if err := checkListFields(section, name, record); err != nil {
			return err
		}
		if err := add(name, record); err != nil {
			return err
		}
	}
	return nil
}

// checkListFields enforces that must-be-list fields are sequences before
// decoding, so the caller gets a typed error instead of a decode failure.
func checkListFields(section, name string, record *yaml.Node) error {
	if record.Kind != yaml.MappingNode {
		return nil
	}
	required := listFields[section]
	for i := 0; i+1 < len(record.Content); i += 2 {
		field := record.Content[i].Value
		value := record.Content[i+1]
		if !required[field] {
			continue
		}
		if value.Kind != yaml.SequenceNode && value.Tag != "!!null" {
			err := zerr.With(domain.ErrInvalidFieldType, "section", section)
			err = zerr.With(err, "entity", name)
			return zerr.With(err, "field", field)
		}
	}
	return nil
}

func addSourceSet(t *domain.Topology, name string, node *yaml.Node) error {
	var dto SourceSetDTO
	if err := node.Decode(&dto); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to decode source set"), "source_set", name)
	}

	subs := make([]domain.Submodule, 0, len(dto.Submodules))
	for _, sub := range dto.Submodules {
		subs = append(subs, domain.NewSubmodule(sub))
	}
	return t.AddSourceSet(&domain.SourceSet{
		Name:        domain.NewInternedString(name),
		Description: dto.Description,
		Submodules:  subs,
	})
}

func addStage(t *domain.Topology, name string, node *yaml.Node) error {
	var dto BuildStageDTO
	if err := node.Decode(&dto); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to decode build stage"), "build_stage", name)
	}

	stageType := domain.StageType(dto.Type)
	if dto.Type == "" {
		stageType = domain.StageGeneric
	}
	return t.AddStage(&domain.BuildStage{
		Name:           domain.NewInternedString(name),
		Description:    dto.Description,
		ArtifactGroups: internAll(dto.ArtifactGroups),
		Type:           stageType,
	})
}

func addGroup(t *domain.Topology, name string, node *yaml.Node) error {
	var dto ArtifactGroupDTO
	if err := node.Decode(&dto); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to decode artifact group"), "artifact_group", name)
	}

	groupType := domain.GroupType(dto.Type)
	if dto.Type == "" {
		groupType = domain.GroupGeneric
	}
	return t.AddGroup(&domain.ArtifactGroup{
		Name:        domain.NewInternedString(name),
		Description: dto.Description,
		Type:        groupType,
		GroupDeps:   internAll(dto.ArtifactGroupDeps),
		SourceSets:  internAll(dto.SourceSets),
	})
}

func addArtifact(t *domain.Topology, name string, node *yaml.Node) error {
	var dto ArtifactDTO
	if err := node.Decode(&dto); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to decode artifact"), "artifact", name)
	}

	artifactType := domain.ArtifactType(dto.Type)
	if dto.Type == "" {
		artifactType = domain.ArtifactTargetNeutral
	}
	disabled := make([]domain.Platform, 0, len(dto.DisablePlatforms))
	for _, p := range dto.DisablePlatforms {
		disabled = append(disabled, domain.Platform(p))
	}
	return t.AddArtifact(&domain.Artifact{
		Name:             domain.NewInternedString(name),
		Group:            domain.NewInternedString(dto.ArtifactGroup),
		Type:             artifactType,
		Deps:             internAll(dto.ArtifactDeps),
		Platform:         domain.Platform(dto.Platform),
		FeatureName:      dto.FeatureName,
		FeatureGroup:     dto.FeatureGroup,
		DisablePlatforms: disabled,
		PythonRequires:   dto.PythonRequires,
	})
}

func internAll(strs []string) []domain.InternedString {
	if len(strs) == 0 {
		return nil
	}
	out := make([]domain.InternedString, len(strs))
	for i, s := range strs {
		out[i] = domain.NewInternedString(s)
	}
	return out
}
