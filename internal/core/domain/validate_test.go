package domain_test

import (
	"testing"

	"github.com/ronmichel/rockpile/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidTopology(t *testing.T) {
	topo := newTestTopology(t)
	assert.Empty(t, topo.Validate())
}

func TestValidate_EmptyTopology(t *testing.T) {
	topo := domain.NewTopology()
	assert.Empty(t, topo.Validate())
}

// TestValidate_CollectsAllReferenceErrors checks that validation reports
// every dangling reference in one pass instead of failing fast.
func TestValidate_CollectsAllReferenceErrors(t *testing.T) {
	topo := domain.NewTopology()

	require.NoError(t, topo.AddStage(&domain.BuildStage{
		Name:           domain.NewInternedString("compiler"),
		Type:           domain.StageGeneric,
		ArtifactGroups: []domain.InternedString{domain.NewInternedString("missing-group")},
	}))
	require.NoError(t, topo.AddGroup(&domain.ArtifactGroup{
		Name:      domain.NewInternedString("core-libs"),
		Type:      domain.GroupGeneric,
		GroupDeps: []domain.InternedString{domain.NewInternedString("phantom-group")},
	}))
	require.NoError(t, topo.AddArtifact(&domain.Artifact{
		Name:  domain.NewInternedString("orphan-lib"),
		Group: domain.NewInternedString("nowhere"),
		Type:  domain.ArtifactTargetNeutral,
		Deps:  []domain.InternedString{domain.NewInternedString("ghost-lib")},
	}))

	errs := topo.Validate()
	require.Len(t, errs, 4)
	assert.Contains(t, errs, "Stage 'compiler' references unknown artifact group 'missing-group'")
	assert.Contains(t, errs, "Artifact group 'core-libs' depends on unknown group 'phantom-group'")
	assert.Contains(t, errs, "Artifact 'orphan-lib' references unknown group 'nowhere'")
	assert.Contains(t, errs, "Artifact 'orphan-lib' depends on unknown artifact 'ghost-lib'")
}

func TestValidate_UnknownSourceSet(t *testing.T) {
	topo := domain.NewTopology()
	require.NoError(t, topo.AddGroup(&domain.ArtifactGroup{
		Name:       domain.NewInternedString("core-libs"),
		Type:       domain.GroupGeneric,
		SourceSets: []domain.InternedString{domain.NewInternedString("missing-src")},
	}))

	errs := topo.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "Artifact group 'core-libs' references unknown source set 'missing-src'", errs[0])
}

func TestValidate_ArtifactWithoutGroup(t *testing.T) {
	topo := domain.NewTopology()
	require.NoError(t, topo.AddArtifact(&domain.Artifact{
		Name: domain.NewInternedString("floating-lib"),
		Type: domain.ArtifactTargetNeutral,
	}))

	// An empty group is permitted; only a non-empty dangling reference is an
	// error.
	assert.Empty(t, topo.Validate())
}

func TestValidate_GroupCycle(t *testing.T) {
	topo := domain.NewTopology()
	require.NoError(t, topo.AddGroup(&domain.ArtifactGroup{
		Name:      domain.NewInternedString("alpha"),
		Type:      domain.GroupGeneric,
		GroupDeps: []domain.InternedString{domain.NewInternedString("beta")},
	}))
	require.NoError(t, topo.AddGroup(&domain.ArtifactGroup{
		Name:      domain.NewInternedString("beta"),
		Type:      domain.GroupGeneric,
		GroupDeps: []domain.InternedString{domain.NewInternedString("alpha")},
	}))

	errs := topo.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "Circular dependency detected involving artifact group 'alpha'", errs[0])
}

func TestValidate_ArtifactCycle(t *testing.T) {
	topo := domain.NewTopology()
	require.NoError(t, topo.AddGroup(&domain.ArtifactGroup{
		Name: domain.NewInternedString("core-libs"),
		Type: domain.GroupGeneric,
	}))
	require.NoError(t, topo.AddArtifact(&domain.Artifact{
		Name:  domain.NewInternedString("first-lib"),
		Group: domain.NewInternedString("core-libs"),
		Type:  domain.ArtifactTargetNeutral,
		Deps:  []domain.InternedString{domain.NewInternedString("second-lib")},
	}))
	require.NoError(t, topo.AddArtifact(&domain.Artifact{
		Name:  domain.NewInternedString("second-lib"),
		Group: domain.NewInternedString("core-libs"),
		Type:  domain.ArtifactTargetNeutral,
		Deps:  []domain.InternedString{domain.NewInternedString("first-lib")},
	}))

	errs := topo.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "Circular dependency detected involving artifact 'first-lib'", errs[0])
}

// TestValidate_SelfCycle checks the degenerate one-node cycle.
func TestValidate_SelfCycle(t *testing.T) {
	topo := domain.NewTopology()
	require.NoError(t, topo.AddGroup(&domain.ArtifactGroup{
		Name:      domain.NewInternedString("selfish"),
		Type:      domain.GroupGeneric,
		GroupDeps: []domain.InternedString{domain.NewInternedString("selfish")},
	}))

	errs := topo.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "Circular dependency detected involving artifact group 'selfish'", errs[0])
}

// TestValidate_OneReportPerCycle declares two disjoint cycles; each must be
// reported exactly once.
func TestValidate_OneReportPerCycle(t *testing.T) {
	topo := domain.NewTopology()
	pairs := [][2]string{
		{"alpha", "beta"},
		{"gamma", "delta"},
	}
	for _, pair := range pairs {
		require.NoError(t, topo.AddGroup(&domain.ArtifactGroup{
			Name:      domain.NewInternedString(pair[0]),
			Type:      domain.GroupGeneric,
			GroupDeps: []domain.InternedString{domain.NewInternedString(pair[1])},
		}))
		require.NoError(t, topo.AddGroup(&domain.ArtifactGroup{
			Name:      domain.NewInternedString(pair[1]),
			Type:      domain.GroupGeneric,
			GroupDeps: []domain.InternedString{domain.NewInternedString(pair[0])},
		}))
	}

	errs := topo.Validate()
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "artifact group 'alpha'")
	assert.Contains(t, errs[1], "artifact group 'gamma'")
}

// TestValidate_CycleRemovalRoundTrip rebuilds the same topology without the
// offending edge and expects a clean report.
func TestValidate_CycleRemovalRoundTrip(t *testing.T) {
	build := func(withCycle bool) *domain.Topology {
		topo := domain.NewTopology()
		alphaDeps := []domain.InternedString{domain.NewInternedString("beta")}
		require.NoError(t, topo.AddGroup(&domain.ArtifactGroup{
			Name:      domain.NewInternedString("alpha"),
			Type:      domain.GroupGeneric,
			GroupDeps: alphaDeps,
		}))
		var betaDeps []domain.InternedString
		if withCycle {
			betaDeps = []domain.InternedString{domain.NewInternedString("alpha")}
		}
		require.NoError(t, topo.AddGroup(&domain.ArtifactGroup{
			Name:      domain.NewInternedString("beta"),
			Type:      domain.GroupGeneric,
			GroupDeps: betaDeps,
		}))
		return topo
	}

	require.Len(t, build(true).Validate(), 1)
	assert.Empty(t, build(false).Validate())
}

func TestValidate_Naming(t *testing.T) {
	topo := domain.NewTopology()
	require.NoError(t, topo.AddGroup(&domain.ArtifactGroup{
		Name: domain.NewInternedString("Bad_Group"),
		Type: domain.GroupGeneric,
	}))
	require.NoError(t, topo.AddArtifact(&domain.Artifact{
		Name:        domain.NewInternedString("good-artifact"),
		Group:       domain.NewInternedString("Bad_Group"),
		Type:        domain.ArtifactTargetNeutral,
		FeatureName: "lower_case",
	}))

	errs := topo.Validate()
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "Artifact group 'Bad_Group' has an invalid name")
	assert.Contains(t, errs[1], "invalid feature_name 'lower_case'")
}

func TestValidate_Enums(t *testing.T) {
	topo := domain.NewTopology()
	require.NoError(t, topo.AddStage(&domain.BuildStage{
		Name: domain.NewInternedString("compiler"),
		Type: domain.StageType("quantum"),
	}))
	require.NoError(t, topo.AddArtifact(&domain.Artifact{
		Name:     domain.NewInternedString("base-lib"),
		Type:     domain.ArtifactTargetNeutral,
		Platform: domain.Platform("plan9"),
	}))

	errs := topo.Validate()
	require.Len(t, errs, 2)
	assert.Equal(t, "Stage 'compiler' has an invalid type 'quantum'", errs[0])
	assert.Equal(t, "Artifact 'base-lib' has an invalid platform 'plan9'", errs[1])
}

// TestValidate_CycleAndReferenceErrors checks that cycle detection still runs
// when reference errors are present.
func TestValidate_CycleAndReferenceErrors(t *testing.T) {
	topo := domain.NewTopology()
	require.NoError(t, topo.AddGroup(&domain.ArtifactGroup{
		Name: domain.NewInternedString("loop"),
		Type: domain.GroupGeneric,
		GroupDeps: []domain.InternedString{
			domain.NewInternedString("loop"),
			domain.NewInternedString("missing"),
		},
	}))

	errs := topo.Validate()
	require.Len(t, errs, 2)
	assert.Equal(t, "Artifact group 'loop' depends on unknown group 'missing'", errs[0])
	assert.Equal(t, "Circular dependency detected involving artifact group 'loop'", errs[1])
}
