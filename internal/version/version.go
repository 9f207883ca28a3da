// ABOUTME: Version constants
// ABOUTME: Product identity reported in logs
package version

const (
	Version      = "0.1.0"
	Product      = "Toneloop Player"
	Manufacturer = "Toneloop"
)
