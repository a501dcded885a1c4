package mtcore

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"os/user"
	"strconv"
	"strings"
)

// FdMapping describes one entry of spawn.c's mapped_fds array: the parent's
// fd Parent appears as fd Target in the child (the effect of h2o_spawnp's
// "dup2(mapped_fds[0], mapped_fds[1])" loop). Targets 0, 1 and 2 become the
// child's stdin, stdout and stderr; higher targets are passed through
// exec.Cmd.ExtraFiles; a negative Target passes nothing to the child.
type FdMapping struct {
	Parent int
	Target int
}

// Spawn starts cmd with argv (argv[0] is conventionally cmd's basename, as
// with execvp) and the given fd mappings, returning its pid. Built on
// os/exec rather than posix_spawnp/fork+exec directly - see REDESIGN FLAGS
// in SPEC_FULL.md for why the "lying posix_spawnp" platform branch h2o
// needs is a non-issue for os/exec, which always reports exec failures back
// through an error pipe on POSIX. The CloexecGate is held across cmd.Start
// unless gateAlreadyHeld (mirroring h2o_spawnp's cloexec_mutex_is_locked
// parameter, for callers that already hold the gate, e.g. inside
// WithCloexecGateHeld).
func Spawn(cmd string, argv []string, fdMap []FdMapping, gateAlreadyHeld bool) (pid int, err error) {
	spawnRateLimiter.recordAttempt(cmd)

	path, err := exec.LookPath(cmd)
	if err != nil {
		return -1, err
	}

	c := exec.Command(path)
	c.Args = argv
	c.Env = appendH2ORoot(os.Environ())

	for _, m := range fdMap {
		f := os.NewFile(uintptr(m.Parent), "")
		switch m.Target {
		case 0:
			c.Stdin = f
		case 1:
			c.Stdout = f
		case 2:
			c.Stderr = f
		default:
			// ExtraFiles[i] becomes fd 3+i in the child; nil entries
			// leave the slots in between closed.
			if i := m.Target - 3; i >= 0 {
				for len(c.ExtraFiles) <= i {
					c.ExtraFiles = append(c.ExtraFiles, nil)
				}
				c.ExtraFiles[i] = f
			}
		}
	}

	start := func() error { return c.Start() }
	if gateAlreadyHeld {
		err = start()
	} else {
		err = WithCloexecGateHeld(start)
	}
	if err != nil {
		L().Err().Err(err).Str(`cmd`, cmd).Log(`spawn failed`)
		return -1, err
	}
	return c.Process.Pid, nil
}

// RunCommand runs cmd with argv, capturing its stdout and waiting for exit,
// the Go analogue of h2o_read_command: a pipe wired to the child's stdout,
// read to EOF, then waitpid for the exit status. exitCode is the process's
// raw exit code (not "0 means success only" - callers compare it themselves,
// matching h2o_read_command's *child_status out-param).
func RunCommand(ctx context.Context, cmd string, argv []string) (stdout []byte, exitCode int, err error) {
	path, err := exec.LookPath(cmd)
	if err != nil {
		return nil, -1, err
	}

	c := exec.CommandContext(ctx, path, argv[1:]...)
	c.Env = appendH2ORoot(os.Environ())
	var buf bytes.Buffer
	c.Stdout = &buf

	err = WithCloexecGateHeld(func() error { return c.Start() })
	if err != nil {
		L().Err().Err(err).Str(`cmd`, cmd).Log(`run_command spawn failed`)
		return nil, -1, err
	}

	waitErr := c.Wait()
	if waitErr != nil {
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			return buf.Bytes(), exitErr.ExitCode(), nil
		}
		return buf.Bytes(), -1, waitErr
	}
	return buf.Bytes(), 0, nil
}

// appendH2ORoot appends H2O_ROOT=<cwd> to env if no H2O_ROOT entry is
// already present, mirroring build_spawn_env's scan-then-append behaviour
// (the original falls back to a compiled-in H2O_ROOT; Go has no build-time
// install prefix to fall back to, so the working directory stands in).
func appendH2ORoot(env []string) []string {
	for _, kv := range env {
		if strings.HasPrefix(kv, "H2O_ROOT=") {
			return env
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return env
	}
	return append(env, "H2O_ROOT="+wd)
}

// ParseServerStarterPorts parses the $SERVER_STARTER_PORT environment value
// (e.g. "127.0.0.1:80=3;/tmp/sock=4") into the list of inherited listener
// fds, per h2o_server_starter_get_fds. An empty env string is itself an
// error (Server::Starter never sets it empty), matching the C
// implementation's explicit empty-string check.
func ParseServerStarterPorts(env string) ([]int, error) {
	if env == "" {
		return nil, ErrMalformedServerStarterPort
	}
	var fds []int
	for _, elem := range strings.Split(env, ";") {
		eq := strings.LastIndexByte(elem, '=')
		if eq < 0 {
			return nil, ErrMalformedServerStarterPort
		}
		fd, err := strconv.Atoi(elem[eq+1:])
		if err != nil || fd < 0 {
			return nil, ErrMalformedServerStarterPort
		}
		fds = append(fds, fd)
	}
	return fds, nil
}

// Setuidgid drops privileges to the named user: setgid, initgroups, then
// setuid, in that order, matching h2o_setuidgid - each step must succeed
// before the next is attempted, since reordering them (e.g. setuid before
// setgid) would leave the process unable to complete the drop.
func Setuidgid(username string) error {
	u, err := user.Lookup(username)
	if err != nil {
		return fmt.Errorf("mtcore: unknown user %q: %w", username, err)
	}
	return setuidgidPlatform(u)
}

// InstallSignalHandler registers cb to run on receipt of sig, the Go
// analogue of h2o_set_signal_handler's sigaction wrapper. Unlike the C
// version, this does not block other handling of sig: os/signal delivers
// notifications on a dedicated goroutine per Notify call.
func InstallSignalHandler(sig os.Signal, cb func(os.Signal)) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sig)
	go func() {
		for s := range ch {
			cb(s)
		}
	}()
}
