//go:build windows

package fs

import (
	"os"
	"syscall"
)

const (
	fileAttributeHidden       = 0x02
	fileAttributeSystem       = 0x04
	fileAttributeReparsePoint = 0x0400
)

// IsHidden reports whether a folder carries the Windows hidden attribute.
// Dot-prefixed names count as hidden when the attributes cannot be read.
func IsHidden(fullPath string, name string) bool {
	attrs, err := folderAttributes(fullPath, name)
	if err != nil {
		return len(name) > 0 && name[0] == '.'
	}
	return attrs&fileAttributeHidden != 0
}

// IsProtected reports whether a folder is a system reparse point such as the
// legacy "My Music" or "Application Data" junctions inside a profile. Those
// are never offered as destinations.
func IsProtected(fullPath, name string) bool {
	if fullPath == "" && name == "" {
		return false
	}
	attrs, err := folderAttributes(fullPath, name)
	if err != nil {
		return false
	}
	const protectedMask = fileAttributeSystem | fileAttributeReparsePoint
	return attrs&protectedMask == protectedMask
}

func folderAttributes(fullPath, name string) (uint32, error) {
	target := fullPath
	if target == "" {
		target = name
	}
	if target == "" {
		return 0, os.ErrInvalid
	}

	ptr, err := syscall.UTF16PtrFromString(target)
	if err != nil {
		return 0, err
	}
	return syscall.GetFileAttributes(ptr)
}
