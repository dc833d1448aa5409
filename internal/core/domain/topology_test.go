package domain_test

import (
	"errors"
	"testing"

	"github.com/ronmichel/rockpile/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestTopology_AddArtifact(t *testing.T) {
	topo := domain.NewTopology()
	artifact := domain.Artifact{
		Name: domain.NewInternedString("base-runtime"),
		Type: domain.ArtifactTargetNeutral,
	}

	if err := topo.AddArtifact(&artifact); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := topo.AddArtifact(&artifact); err == nil {
		t.Error("expected error when adding duplicate artifact, got nil")
	} else {
		if !errors.Is(err, domain.ErrDuplicateEntity) {
			t.Errorf("expected ErrDuplicateEntity, got %v", err)
		}
		// Verify metadata
		var zErr *zerr.Error
		if !errors.As(err, &zErr) {
			t.Fatalf("expected *zerr.Error, got %T", err)
		}
		meta := zErr.Metadata()
		if name, ok := meta["artifact"].(string); !ok || name != "base-runtime" {
			t.Errorf("expected metadata artifact=base-runtime, got %v", meta["artifact"])
		}
	}
}

func TestTopology_AddStage_Duplicate(t *testing.T) {
	topo := domain.NewTopology()
	stage := domain.BuildStage{
		Name: domain.NewInternedString("compiler"),
		Type: domain.StageGeneric,
	}

	if err := topo.AddStage(&stage); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := topo.AddStage(&stage); !errors.Is(err, domain.ErrDuplicateEntity) {
		t.Errorf("expected ErrDuplicateEntity, got %v", err)
	}
}

func TestTopology_Lookups(t *testing.T) {
	topo := domain.NewTopology()
	if err := topo.AddGroup(&domain.ArtifactGroup{
		Name: domain.NewInternedString("core-libs"),
		Type: domain.GroupGeneric,
	}); err != nil {
		t.Fatalf("failed to add group: %v", err)
	}

	if _, err := topo.Group("core-libs"); err != nil {
		t.Errorf("expected lookup to succeed, got %v", err)
	}
	if _, err := topo.Group("absent"); !errors.Is(err, domain.ErrGroupNotFound) {
		t.Errorf("expected ErrGroupNotFound, got %v", err)
	}
	if _, err := topo.Stage("absent"); !errors.Is(err, domain.ErrStageNotFound) {
		t.Errorf("expected ErrStageNotFound, got %v", err)
	}
	if _, err := topo.Artifact("absent"); !errors.Is(err, domain.ErrArtifactNotFound) {
		t.Errorf("expected ErrArtifactNotFound, got %v", err)
	}
	if _, err := topo.SourceSet("absent"); !errors.Is(err, domain.ErrSourceSetNotFound) {
		t.Errorf("expected ErrSourceSetNotFound, got %v", err)
	}
}

func TestTopology_DeclarationOrder(t *testing.T) {
	topo := domain.NewTopology()
	names := []string{"zeta", "alpha", "mid"}
	for _, name := range names {
		if err := topo.AddGroup(&domain.ArtifactGroup{
			Name: domain.NewInternedString(name),
			Type: domain.GroupGeneric,
		}); err != nil {
			t.Fatalf("failed to add group %s: %v", name, err)
		}
	}

	groups := topo.Groups()
	if len(groups) != len(names) {
		t.Fatalf("expected %d groups, got %d", len(names), len(groups))
	}
	for i, name := range names {
		if got := groups[i].Name.String(); got != name {
			t.Errorf("position %d: expected %s, got %s", i, name, got)
		}
	}
}
