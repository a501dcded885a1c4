package mtcore

import (
	"net"
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeFdFactory_Pipe(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("platform pipe wiring differs")
	}
	var f SafeFdFactory
	r, w, err := f.Pipe()
	require.NoError(t, err)
	defer os.NewFile(uintptr(r), "r").Close()
	defer os.NewFile(uintptr(w), "w").Close()

	assert.GreaterOrEqual(t, r, 0)
	assert.GreaterOrEqual(t, w, 0)
	assert.NotEqual(t, r, w)

	wf := os.NewFile(uintptr(w), "w")
	rf := os.NewFile(uintptr(r), "r")
	_, err = wf.Write([]byte("hi"))
	require.NoError(t, err)
	buf := make([]byte, 2)
	_, err = rf.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(buf))
}

func TestSafeFdFactory_Accept(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn, err := net.Dial("tcp", ln.Addr().String())
		if err == nil {
			conn.Close()
		}
	}()

	var f SafeFdFactory
	conn, err := f.Accept(ln)
	require.NoError(t, err)
	conn.Close()
	<-done
}
