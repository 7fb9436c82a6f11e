//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package core

import "golang.org/x/sys/unix"

func availableSpace(dir string) (uint64, bool, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return 0, false, err
	}
	return uint64(stat.Bavail) * uint64(stat.Bsize), true, nil
}
