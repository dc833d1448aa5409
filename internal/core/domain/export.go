package domain

// DependencyGraph is a flattened, read-only projection of the topology used
// by external tooling: build-system generators and diagnostic printers. It
// is not consumed internally.
type DependencyGraph struct {
	BuildStages    map[string]StageNode    `json:"build_stages"`
	ArtifactGroups map[string]GroupNode    `json:"artifact_groups"`
	Artifacts      map[string]ArtifactNode `json:"artifacts"`
}

// StageNode describes one build stage in the exported graph.
type StageNode struct {
	Type              string   `json:"type"`
	ArtifactGroups    []string `json:"artifact_groups"`
	InboundArtifacts  []string `json:"inbound_artifacts"`
	ProducedArtifacts []string `json:"produced_artifacts"`
}

// GroupNode describes one artifact group in the exported graph.
type GroupNode struct {
	Type      string   `json:"type"`
	DependsOn []string `json:"depends_on"`
	Artifacts []string `json:"artifacts"`
}

// ArtifactNode describes one artifact in the exported graph.
type ArtifactNode struct {
	Type          string   `json:"type"`
	ArtifactGroup string   `json:"artifact_group"`
	DependsOn     []string `json:"depends_on"`
	Platform      string   `json:"platform,omitempty"`
}

// DependencyGraph builds the exported projection. Stage queries cannot fail
// here because every stage name comes from the topology itself.
func (t *Topology) DependencyGraph() *DependencyGraph {
	graph := &DependencyGraph{
		BuildStages:    make(map[string]StageNode, len(t.stageOrder)),
		ArtifactGroups: make(map[string]GroupNode, len(t.groupOrder)),
		Artifacts:      make(map[string]ArtifactNode, len(t.artifactOrder)),
	}

	for _, stage := range t.Stages() {
		inbound, _ := t.InboundArtifacts(stage.Name.String())
		produced, _ := t.ProducedArtifacts(stage.Name.String())
		graph.BuildStages[stage.Name.String()] = StageNode{
			Type:              string(stage.Type),
			ArtifactGroups:    toStrings(stage.ArtifactGroups),
			InboundArtifacts:  inbound.Names(),
			ProducedArtifacts: produced.Names(),
		}
	}

	for _, group := range t.Groups() {
		owned := t.artifactsOwnedBy(group.Name)
		names := make([]string, 0, len(owned))
		for _, a := range owned {
			names = append(names, a.Name.String())
		}
		graph.ArtifactGroups[group.Name.String()] = GroupNode{
			Type:      string(group.Type),
			DependsOn: toStrings(group.GroupDeps),
			Artifacts: names,
		}
	}

	for _, artifact := range t.Artifacts() {
		graph.Artifacts[artifact.Name.String()] = ArtifactNode{
			Type:          string(artifact.Type),
			ArtifactGroup: artifact.Group.String(),
			DependsOn:     toStrings(artifact.Deps),
			Platform:      string(artifact.Platform),
		}
	}

	return graph
}

func toStrings(names []InternedString) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = name.String()
	}
	return out
}
