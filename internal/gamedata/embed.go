// Package gamedata provides the embedded actor definitions and a weighted
// monster spawn registry.
package gamedata

import "embed"

// dataFS holds actors.json, compiled into the binary.
//
//go:embed actors.json
var dataFS embed.FS
