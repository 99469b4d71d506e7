//go:build linux

package execwait

import "strconv"

// WithAddressSpaceLimit rewrites spec to run under a shell that applies a
// `ulimit -v` virtual-memory ceiling before exec'ing the real command. Go's
// os/exec has no hook between fork and exec to call setrlimit directly, so
// routing through /bin/sh -c is the standard way to impose one. Not wired
// in by any runner by default -- deno and uv already bound their own heaps
// -- but available as an opt-in hard backstop.
func WithAddressSpaceLimit(spec Spec, kilobytes uint64) Spec {
	shArgs := append([]string{spec.Name}, spec.Args...)
	script := "ulimit -v " + strconv.FormatUint(kilobytes, 10) + " && exec \"$@\""
	spec.Name = "/bin/sh"
	spec.Args = append([]string{"-c", script, "--"}, shArgs...)
	return spec
}
