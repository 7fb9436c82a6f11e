//go:build windows

package core

import "golang.org/x/sys/windows"

func availableSpace(dir string) (uint64, bool, error) {
	path, err := windows.UTF16PtrFromString(dir)
	if err != nil {
		return 0, false, err
	}

	var free, total, totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(path, &free, &total, &totalFree); err != nil {
		return 0, false, err
	}
	return free, true, nil
}
