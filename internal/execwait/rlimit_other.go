//go:build !linux

package execwait

// WithAddressSpaceLimit is a no-op outside Linux; there is no portable
// equivalent of ulimit -v worth shelling out for on the other platforms
// this binary targets.
func WithAddressSpaceLimit(spec Spec, kilobytes uint64) Spec {
	return spec
}
