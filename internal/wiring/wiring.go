// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/ronmichel/rockpile/internal/adapters/cmake"
	_ "github.com/ronmichel/rockpile/internal/adapters/config"
	_ "github.com/ronmichel/rockpile/internal/adapters/logger"
	_ "github.com/ronmichel/rockpile/internal/adapters/telemetry"
	// Register app nodes.
	_ "github.com/ronmichel/rockpile/internal/app"
)
