// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/sci/internal/adapters/auditstore"
	_ "go.trai.ch/sci/internal/adapters/classifier"
	_ "go.trai.ch/sci/internal/adapters/config"
	_ "go.trai.ch/sci/internal/adapters/fs"
	_ "go.trai.ch/sci/internal/adapters/lock"
	_ "go.trai.ch/sci/internal/adapters/logger"
	_ "go.trai.ch/sci/internal/adapters/report"
	_ "go.trai.ch/sci/internal/adapters/shell"
	_ "go.trai.ch/sci/internal/adapters/staging"
	_ "go.trai.ch/sci/internal/adapters/telemetry"
	_ "go.trai.ch/sci/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/sci/internal/app"
	_ "go.trai.ch/sci/internal/engine/auditor"
	_ "go.trai.ch/sci/internal/engine/lineage"
)
