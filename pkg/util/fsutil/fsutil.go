package fsutil

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Exists returns true if the target file system object exists
func Exists(target string) bool {
	if _, err := os.Stat(target); err != nil {
		return false
	}

	return true
}

// IsRegularFile returns true if the target file system object is a regular file
func IsRegularFile(target string) bool {
	info, err := os.Stat(target)
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}

// IsDirectory returns true if the target file system object is a directory
func IsDirectory(target string) bool {
	info, err := os.Stat(target)
	if err != nil {
		return false
	}

	return info.IsDir()
}

func HasReadAccess(dst string) (bool, error) {
	err := unix.Access(dst, unix.R_OK)
	if err == nil {
		return true, nil
	}

	if err == unix.EACCES {
		return false, nil
	}

	return false, err
}

func HasWriteAccess(dst string) (bool, error) {
	err := unix.Access(dst, unix.W_OK)
	if err == nil {
		return true, nil
	}

	if err == unix.EACCES {
		return false, nil
	}

	return false, err
}

// CheckOutputLocation makes sure the output file can be created in its directory
func CheckOutputLocation(location string) error {
	dir := filepath.Dir(location)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("output directory %s doesn't exist", dir)
	}

	if !info.IsDir() {
		return fmt.Errorf("output path %s is not a directory", dir)
	}

	canWrite, err := HasWriteAccess(dir)
	if err != nil {
		return err
	}

	if !canWrite {
		return fmt.Errorf("output directory %s is not writable", dir)
	}

	return nil
}
