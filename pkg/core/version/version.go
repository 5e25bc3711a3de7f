// ============================================================================
// argot - Command-String Argument Toolkit
// ============================================================================
//
// Package:     version
// Description: Central version management for the toolkit and its shells
// Author:      msto63
// Created:     2025-11-12
// License:     MIT
// ============================================================================

package version

// Version constants for argot components
const (
	// Platform version
	Platform = "0.1.0"

	// Component versions
	Foundation = "0.1.0"
	Gateway    = "0.1.0"
	REPL       = "0.1.0"

	// Protocol is the websocket message protocol revision
	Protocol = "1.0.0"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "foundation":
		return Foundation
	case "gateway", "serve":
		return Gateway
	case "repl":
		return REPL
	case "protocol":
		return Protocol
	default:
		return Platform
	}
}
