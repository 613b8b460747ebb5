// Package bowerbird holds shared metadata for the Bowerbird scaffolding service.
package bowerbird

// Version is the current Bowerbird release version.
const Version = "0.4.0"
