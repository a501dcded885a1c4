package mtcore

import (
	_ "go.uber.org/automaxprocs"
)

// NumCPU returns the number of processors available to this process, the Go
// analogue of h2o_numproc's sysconf(_SC_NPROCESSORS_ONLN)/sysctl dance.
// automaxprocs's import-time side effect corrects GOMAXPROCS to the
// cgroup CPU quota when running under a container, so GOMAXPROCS(0) already
// reflects "available processors" the way h2o's target platform syscalls do
// on a bare-metal host - container-awareness h2o's C implementation simply
// has no equivalent of. Falls back to 1 if the computed value is invalid,
// per spec.md.
func NumCPU() int {
	n := defaultGOMAXPROCS()
	if n < 1 {
		return 1
	}
	return n
}
