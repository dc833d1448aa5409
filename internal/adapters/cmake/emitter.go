// Package cmake generates build-system include files from a topology.
package cmake

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ronmichel/rockpile/internal/core/domain"
	"github.com/ronmichel/rockpile/internal/core/ports"
	"go.trai.ch/zerr"
)

const sectionRule = "# =============================================================================\n"

// Emitter writes CMake includes and per-stage dependency manifests derived
// from a topology.
type Emitter struct {
	log ports.Logger
}

// NewEmitter creates an Emitter.
func NewEmitter(log ports.Logger) *Emitter {
	return &Emitter{log: log}
}

// WriteInclude writes the full generated include: validation metadata,
// feature declarations, custom targets for artifacts, groups, and stages,
// per-stage dependency variables, and the stage build order. digest
// identifies the source document revision.
func (e *Emitter) WriteInclude(w io.Writer, t *domain.Topology, digest string) error {
	var buf bytes.Buffer

	buf.WriteString("# Auto-generated from the build topology document\n")
	fmt.Fprintf(&buf, "# Source digest: xxh64:%s\n", digest)
	buf.WriteString("# DO NOT EDIT MANUALLY\n\n")

	e.writeValidationMetadata(&buf, t)
	e.writeFeatureDeclarations(&buf, t)
	e.writeArtifactTargets(&buf, t)
	e.writeGroupTargets(&buf, t)
	e.writeStageTargets(&buf, t)
	if err := e.writeDependencyVariables(&buf, t); err != nil {
		return err
	}
	e.writeBuildOrder(&buf, t)

	_, err := w.Write(buf.Bytes())
	return err
}

// GenerateFile writes the include to path, creating parent directories.
func (e *Emitter) GenerateFile(path string, t *domain.Topology, digest string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create output directory")
	}

	var buf bytes.Buffer
	if err := e.WriteInclude(&buf, t, digest); err != nil {
		return err
	}
	//nolint:gosec // Generated include is world-readable on purpose
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write generated include"), "path", path)
	}

	e.log.Info("generated build-system include at " + path)
	return nil
}

// WriteStageManifest writes one stage's inbound artifact list, one name per
// line, sorted, to <dir>/<stage>.deps.txt. CI jobs read it to know what to
// fetch from the artifact store before the stage runs.
func (e *Emitter) WriteStageManifest(dir, stage string, inbound domain.NameSet) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create manifest directory")
	}

	var buf bytes.Buffer
	for _, name := range inbound.Names() {
		buf.WriteString(name)
		buf.WriteByte('\n')
	}

	path := filepath.Join(dir, stage+".deps.txt")
	//nolint:gosec // Manifest is world-readable on purpose
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write stage manifest"), "build_stage", stage)
	}
	return nil
}

func (e *Emitter) writeSectionHeader(buf *bytes.Buffer, title string) {
	buf.WriteString(sectionRule)
	fmt.Fprintf(buf, "# %s\n", title)
	buf.WriteString(sectionRule)
	buf.WriteByte('\n')
}

func (e *Emitter) writeValidationMetadata(buf *bytes.Buffer, t *domain.Topology) {
	e.writeSectionHeader(buf, "Validation metadata")

	buf.WriteString("# List of all valid artifacts defined in the topology\n")
	buf.WriteString("set(ROCKPILE_TOPOLOGY_ARTIFACTS\n")
	for _, a := range t.Artifacts() {
		fmt.Fprintf(buf, "  %s\n", a.Name)
	}
	buf.WriteString(")\n\n")

	buf.WriteString("# Mapping of artifacts to their groups\n")
	for _, a := range t.Artifacts() {
		if a.Group.String() == "" {
			continue
		}
		fmt.Fprintf(buf, "set(ROCKPILE_ARTIFACT_GROUP_%s \"%s\")\n", cmakeCase(a.Name.String()), a.Group)
	}
	buf.WriteByte('\n')

	buf.WriteString("# List of artifacts in each group\n")
	for _, g := range t.Groups() {
		fmt.Fprintf(buf, "set(ROCKPILE_GROUP_ARTIFACTS_%s\n", cmakeCase(g.Name.String()))
		artifacts, _ := t.ArtifactsInGroup(g.Name.String())
		for _, a := range artifacts {
			fmt.Fprintf(buf, "  %s\n", a.Name)
		}
		buf.WriteString(")\n\n")
	}
}

// writeFeatureDeclarations emits one feature declaration per artifact, in
// build order so a feature's REQUIRES are declared before they are
// referenced.
func (e *Emitter) writeFeatureDeclarations(buf *bytes.Buffer, t *domain.Topology) {
	e.writeSectionHeader(buf, "Feature declarations from artifacts")

	seen := make(domain.NameSet)
	var ordered []domain.Artifact
	for _, stageName := range t.BuildOrder() {
		stage, err := t.Stage(stageName)
		if err != nil {
			continue
		}
		for _, group := range stage.ArtifactGroups {
			artifacts, err := t.ArtifactsInGroup(group.String())
			if err != nil {
				continue
			}
			for _, a := range artifacts {
				if !seen.Has(a.Name) {
					seen.Add(a.Name)
					ordered = append(ordered, a)
				}
			}
		}
	}

	for _, a := range ordered {
		fmt.Fprintf(buf, "rockpile_add_feature(%s\n", domain.FeatureName(a))
		fmt.Fprintf(buf, "  GROUP %s\n", domain.FeatureGroup(a))
		fmt.Fprintf(buf, "  DESCRIPTION \"Enables %s\"\n", a.Name)

		var requires []string
		for _, depName := range a.Deps {
			dep, err := t.Artifact(depName.String())
			if err != nil {
				continue
			}
			requires = append(requires, domain.FeatureName(dep))
		}
		if len(requires) > 0 {
			fmt.Fprintf(buf, "  REQUIRES %s\n", strings.Join(requires, " "))
		}

		if len(a.DisablePlatforms) > 0 {
			names := make([]string, len(a.DisablePlatforms))
			for i, p := range a.DisablePlatforms {
				names[i] = string(p)
			}
			fmt.Fprintf(buf, "  DISABLE_PLATFORMS %s\n", strings.Join(names, " "))
		}
		buf.WriteString(")\n\n")
	}
}

func (e *Emitter) writeArtifactTargets(buf *bytes.Buffer, t *domain.Topology) {
	e.writeSectionHeader(buf, "Artifact targets")
	for _, a := range t.Artifacts() {
		fmt.Fprintf(buf, "# Artifact: %s\n", a.Name)
		fmt.Fprintf(buf, "add_custom_target(artifact-%s\n", a.Name)
		fmt.Fprintf(buf, "  COMMENT \"Building artifact %s\"\n", a.Name)
		buf.WriteString(")\n\n")
	}
}

func (e *Emitter) writeGroupTargets(buf *bytes.Buffer, t *domain.Topology) {
	e.writeSectionHeader(buf, "Artifact group targets")
	for _, g := range t.Groups() {
		fmt.Fprintf(buf, "# Artifact group: %s\n", g.Name)
		fmt.Fprintf(buf, "add_custom_target(artifact-group-%s\n", g.Name)
		fmt.Fprintf(buf, "  COMMENT \"Building artifact group %s\"\n", g.Name)

		artifacts, _ := t.ArtifactsInGroup(g.Name.String())
		if len(artifacts) > 0 {
			buf.WriteString("  DEPENDS\n")
			for _, a := range artifacts {
				fmt.Fprintf(buf, "    artifact-%s\n", a.Name)
			}
		}
		buf.WriteString(")\n\n")
	}
}

func (e *Emitter) writeStageTargets(buf *bytes.Buffer, t *domain.Topology) {
	e.writeSectionHeader(buf, "Build stage targets")
	for _, s := range t.Stages() {
		fmt.Fprintf(buf, "# Build stage: %s\n", s.Name)
		fmt.Fprintf(buf, "# Type: %s\n", s.Type)
		fmt.Fprintf(buf, "# Description: %s\n", s.Description)
		fmt.Fprintf(buf, "add_custom_target(stage-%s\n", s.Name)
		fmt.Fprintf(buf, "  COMMENT \"Building stage %s\"\n", s.Name)

		if len(s.ArtifactGroups) > 0 {
			buf.WriteString("  DEPENDS\n")
			for _, group := range s.ArtifactGroups {
				fmt.Fprintf(buf, "    artifact-group-%s\n", group)
			}
		}
		buf.WriteString(")\n\n")
	}
}

func (e *Emitter) writeDependencyVariables(buf *bytes.Buffer, t *domain.Topology) error {
	e.writeSectionHeader(buf, "Dependency information")
	for _, s := range t.Stages() {
		produced, err := t.ProducedArtifacts(s.Name.String())
		if err != nil {
			return err
		}
		inbound, err := t.InboundArtifacts(s.Name.String())
		if err != nil {
			return err
		}

		fmt.Fprintf(buf, "# Stage %s - produced artifacts\n", s.Name)
		fmt.Fprintf(buf, "set(ROCKPILE_STAGE_%s_ARTIFACTS\n", cmakeCase(s.Name.String()))
		writeSorted(buf, produced.Names())
		buf.WriteString(")\n\n")

		fmt.Fprintf(buf, "# Stage %s - inbound artifacts\n", s.Name)
		fmt.Fprintf(buf, "set(ROCKPILE_STAGE_%s_DEPS\n", cmakeCase(s.Name.String()))
		writeSorted(buf, inbound.Names())
		buf.WriteString(")\n\n")
	}
	return nil
}

func (e *Emitter) writeBuildOrder(buf *bytes.Buffer, t *domain.Topology) {
	e.writeSectionHeader(buf, "Build order")

	order := t.BuildOrder()
	buf.WriteString("# Stages in dependency order:\n")
	for i, stage := range order {
		fmt.Fprintf(buf, "#   %d. %s\n", i+1, stage)
	}
	buf.WriteByte('\n')

	buf.WriteString("set(ROCKPILE_BUILD_ORDER\n")
	for _, stage := range order {
		fmt.Fprintf(buf, "  %s\n", stage)
	}
	buf.WriteString(")\n\n")
}

func writeSorted(buf *bytes.Buffer, names []string) {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	for _, name := range sorted {
		fmt.Fprintf(buf, "  %s\n", name)
	}
}

func cmakeCase(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}
