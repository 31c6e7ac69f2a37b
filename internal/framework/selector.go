package framework

import "errors"

// ErrNoFrameworksInstalled is returned when a runtime exposes no frameworks.
var ErrNoFrameworksInstalled = errors.New("no frameworks installed")

// Select picks the newest installed desktop framework.
//
// The fold is seeded with the first candidate and version [0]; a candidate
// replaces the running best only when it is installed, is a desktop
// framework and Prefers its version over the running best version. If no
// candidate qualifies the first one is returned.
func Select(rt Runtime) (Descriptor, error) {
	candidates := rt.Frameworks()
	if len(candidates) == 0 {
		return Descriptor{}, ErrNoFrameworksInstalled
	}
	best, bestVersion := candidates[0], Version{0}
	for _, fx := range candidates {
		if rt.IsInstalled(fx) && fx.Identifier == IdentifierDesktop && Prefers(fx.Version, bestVersion) {
			best, bestVersion = fx, fx.Version
		}
	}
	return best, nil
}
