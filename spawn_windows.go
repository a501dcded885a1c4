//go:build windows

package mtcore

import (
	"errors"
	"os/user"
)

// setuidgidPlatform always fails on Windows. h2o_setuidgid's "#else return 0"
// branch silently reports success for a privilege drop that never happened;
// this deliberately does not repeat that mistake (see SPEC_FULL.md §9) -
// Windows has no uid/gid model to drop privileges through this path, and a
// caller asking for one needs to know it didn't happen.
func setuidgidPlatform(*user.User) error {
	return errors.New("mtcore: Setuidgid is not supported on this platform")
}
