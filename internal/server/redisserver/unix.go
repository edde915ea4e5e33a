package redisserver

import (
	"fmt"
	"net"
	"os"
)

const defaultUnixSocketPerm os.FileMode = 0o700

// listenUnix listens on a Unix domain socket at path. An existing socket
// file is removed first; any other kind of file is an error. The listener
// unlinks the file when closed.
func listenUnix(path string, perm os.FileMode) (net.Listener, error) {
	if perm == 0 {
		perm = defaultUnixSocketPerm
	}
	if fi, err := os.Lstat(path); err == nil {
		if fi.Mode()&os.ModeSocket == 0 {
			return nil, fmt.Errorf("listen unix %s: file exists and is not a socket", path)
		}
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("remove stale socket %s: %w", path, err)
		}
	}

	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen unix %s: %w", path, err)
	}
	if err := os.Chmod(path, perm); err != nil {
		_ = ln.Close()
		return nil, fmt.Errorf("chmod %s: %w", path, err)
	}
	return ln, nil
}
