package cmake_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ronmichel/rockpile/internal/adapters/cmake"
	"github.com/ronmichel/rockpile/internal/core/domain"
	"github.com/ronmichel/rockpile/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newEmitter(t *testing.T) *cmake.Emitter {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	return cmake.NewEmitter(log)
}

func newPipelineTopology(t *testing.T) *domain.Topology {
	t.Helper()
	topo := domain.NewTopology()

	require.NoError(t, topo.AddGroup(&domain.ArtifactGroup{
		Name: domain.NewInternedString("foundation-libs"),
		Type: domain.GroupGeneric,
	}))
	require.NoError(t, topo.AddGroup(&domain.ArtifactGroup{
		Name:      domain.NewInternedString("runtime-core"),
		Type:      domain.GroupPerArch,
		GroupDeps: []domain.InternedString{domain.NewInternedString("foundation-libs")},
	}))

	require.NoError(t, topo.AddStage(&domain.BuildStage{
		Name:           domain.NewInternedString("foundation"),
		Type:           domain.StageGeneric,
		ArtifactGroups: []domain.InternedString{domain.NewInternedString("foundation-libs")},
	}))
	require.NoError(t, topo.AddStage(&domain.BuildStage{
		Name:           domain.NewInternedString("runtime"),
		Type:           domain.StagePerArch,
		ArtifactGroups: []domain.InternedString{domain.NewInternedString("runtime-core")},
	}))

	require.NoError(t, topo.AddArtifact(&domain.Artifact{
		Name:  domain.NewInternedString("base-headers"),
		Group: domain.NewInternedString("foundation-libs"),
		Type:  domain.ArtifactTargetNeutral,
	}))
	require.NoError(t, topo.AddArtifact(&domain.Artifact{
		Name:             domain.NewInternedString("runtime-lib"),
		Group:            domain.NewInternedString("runtime-core"),
		Type:             domain.ArtifactTargetSpecific,
		Deps:             []domain.InternedString{domain.NewInternedString("base-headers")},
		DisablePlatforms: []domain.Platform{domain.PlatformWindows},
	}))

	return topo
}

func TestEmitter_WriteInclude(t *testing.T) {
	emitter := newEmitter(t)
	topo := newPipelineTopology(t)

	var buf bytes.Buffer
	require.NoError(t, emitter.WriteInclude(&buf, topo, "deadbeefdeadbeef"))
	out := buf.String()

	t.Run("header", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(out, "# Auto-generated"))
		assert.Contains(t, out, "# Source digest: xxh64:deadbeefdeadbeef")
		assert.Contains(t, out, "DO NOT EDIT MANUALLY")
	})

	t.Run("validation metadata", func(t *testing.T) {
		assert.Contains(t, out, "set(ROCKPILE_TOPOLOGY_ARTIFACTS\n  base-headers\n  runtime-lib\n)")
		assert.Contains(t, out, `set(ROCKPILE_ARTIFACT_GROUP_RUNTIME_LIB "runtime-core")`)
		assert.Contains(t, out, "set(ROCKPILE_GROUP_ARTIFACTS_FOUNDATION_LIBS\n  base-headers\n)")
	})

	t.Run("feature declarations", func(t *testing.T) {
		assert.Contains(t, out, "rockpile_add_feature(BASE_HEADERS\n  GROUP FOUNDATION_LIBS")
		assert.Contains(t, out, "rockpile_add_feature(RUNTIME_LIB\n  GROUP RUNTIME_CORE")
		assert.Contains(t, out, "REQUIRES BASE_HEADERS")
		assert.Contains(t, out, "DISABLE_PLATFORMS windows")

		// Dependencies are declared before their dependents.
		assert.Less(t,
			strings.Index(out, "rockpile_add_feature(BASE_HEADERS"),
			strings.Index(out, "rockpile_add_feature(RUNTIME_LIB"))
	})

	t.Run("targets", func(t *testing.T) {
		assert.Contains(t, out, "add_custom_target(artifact-base-headers")
		assert.Contains(t, out, "add_custom_target(artifact-group-runtime-core")
		assert.Contains(t, out, "add_custom_target(stage-runtime")
		assert.Contains(t, out, "artifact-group-runtime-core\n)")
	})

	t.Run("dependency variables", func(t *testing.T) {
		assert.Contains(t, out, "set(ROCKPILE_STAGE_FOUNDATION_ARTIFACTS\n  base-headers\n)")
		assert.Contains(t, out, "set(ROCKPILE_STAGE_RUNTIME_DEPS\n  base-headers\n)")
		assert.Contains(t, out, "set(ROCKPILE_STAGE_RUNTIME_ARTIFACTS\n  runtime-lib\n)")
	})

	t.Run("build order", func(t *testing.T) {
		assert.Contains(t, out, "set(ROCKPILE_BUILD_ORDER\n  foundation\n  runtime\n)")
	})
}

func TestEmitter_GenerateFile(t *testing.T) {
	emitter := newEmitter(t)
	topo := newPipelineTopology(t)

	path := filepath.Join(t.TempDir(), "cmake", "topology_generated.cmake")
	require.NoError(t, emitter.GenerateFile(path, topo, "0123456789abcdef"))

	content, err := os.ReadFile(path) //nolint:gosec // Test-controlled path
	require.NoError(t, err)
	assert.Contains(t, string(content), "xxh64:0123456789abcdef")
}

func TestEmitter_WriteStageManifest(t *testing.T) {
	emitter := newEmitter(t)

	inbound := make(domain.NameSet)
	inbound.Add(domain.NewInternedString("zeta-lib"))
	inbound.Add(domain.NewInternedString("alpha-lib"))

	dir := filepath.Join(t.TempDir(), "deps")
	require.NoError(t, emitter.WriteStageManifest(dir, "runtime", inbound))

	content, err := os.ReadFile(filepath.Join(dir, "runtime.deps.txt")) //nolint:gosec // Test-controlled path
	require.NoError(t, err)
	assert.Equal(t, "alpha-lib\nzeta-lib\n", string(content))
}

func TestEmitter_WriteInclude_EmptyTopology(t *testing.T) {
	emitter := newEmitter(t)

	var buf bytes.Buffer
	require.NoError(t, emitter.WriteInclude(&buf, domain.NewTopology(), "00"))
	assert.Contains(t, buf.String(), "set(ROCKPILE_BUILD_ORDER\n)")
}
