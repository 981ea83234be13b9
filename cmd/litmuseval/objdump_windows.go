//go:build windows

package main

import "os"

// readObjdumpFile reads the file at path. golang.org/x/sys/unix has no
// Windows build, so this platform falls back to stdlib os.ReadFile
// exactly the way the teacher's filewatcher_windows.go falls back to a
// polling stdlib implementation where filewatcher_unix.go/_darwin.go use
// inotify/kqueue.
func readObjdumpFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
