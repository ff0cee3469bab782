// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/zsb/internal/adapters/artifacts"
	_ "go.trai.ch/zsb/internal/adapters/boards"
	_ "go.trai.ch/zsb/internal/adapters/buildlog"
	_ "go.trai.ch/zsb/internal/adapters/config"
	_ "go.trai.ch/zsb/internal/adapters/dts"
	_ "go.trai.ch/zsb/internal/adapters/kconfig"
	_ "go.trai.ch/zsb/internal/adapters/logger"
	_ "go.trai.ch/zsb/internal/adapters/remote"
	_ "go.trai.ch/zsb/internal/adapters/results"
	_ "go.trai.ch/zsb/internal/adapters/shell"
	_ "go.trai.ch/zsb/internal/adapters/west"
	// Register app and engine nodes.
	_ "go.trai.ch/zsb/internal/app"
	_ "go.trai.ch/zsb/internal/engine/builder"
	_ "go.trai.ch/zsb/internal/engine/matrix"
	_ "go.trai.ch/zsb/internal/engine/recorder"
	_ "go.trai.ch/zsb/internal/engine/summary"
)
