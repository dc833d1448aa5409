// Package ports defines the interfaces between the core domain and the
// adapter layer.
package ports

import "github.com/ronmichel/rockpile/internal/core/domain"

// ConfigLoader defines the interface for loading a topology document.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the topology document at the given path and returns the
	// parsed, immutable topology.
	Load(path string) (*domain.Topology, error)
}
