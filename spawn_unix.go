//go:build !windows

package mtcore

import (
	"os/user"
	"strconv"

	"golang.org/x/sys/unix"
)

func setuidgidPlatform(u *user.User) error {
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return err
	}
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return err
	}
	if err := unix.Setgid(gid); err != nil {
		return err
	}
	// initgroups(pw->pw_name, pw->pw_gid) populates the supplementary
	// group list from the user's full group membership; Go's unix
	// package exposes only the raw setgroups(2) syscall, so the lookup
	// step (GroupIds) does the libc wrapper's job instead.
	groupIDs, err := u.GroupIds()
	if err != nil {
		return err
	}
	groups := make([]int, 0, len(groupIDs))
	for _, g := range groupIDs {
		id, err := strconv.Atoi(g)
		if err != nil {
			continue
		}
		groups = append(groups, id)
	}
	if err := unix.Setgroups(groups); err != nil {
		return err
	}
	if err := unix.Setuid(uid); err != nil {
		return err
	}
	return nil
}
