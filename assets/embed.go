package assets

import (
	_ "embed"
)

//go:embed destinations.json
var destinations []byte

// Destinations returns the bundled dataset in the curator's JSON format.
func Destinations() []byte {
	return destinations
}
