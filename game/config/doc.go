// Package config provides configuration management for the strategy agent.
//
// The config package handles:
//   - Loading bot configurations from JSON files
//   - Configuration validation and default filling
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Bot configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - Terrain layout using character mapping (.=plain, M=mount, W=water,
//     F=flag, B=base)
//   - Combat tunables (attack range)
//   - Objective-capture tunables (supply floors, availability round, grace)
//   - Advance/gather tunables (spread threshold, power ratios)
//   - Strategy scoring weights and history capacity
//
// A configuration only needs to specify what it overrides; every zero-valued
// tunable is filled from the built-in defaults.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	botConfig, err := manager.LoadConfig("contest")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	grid, err := botConfig.BuildGrid()
package config
