package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "Dockerfile")
	if err := os.WriteFile(filePath, []byte("FROM scratch\n"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	if !Exists(filePath) {
		t.Errorf("Exists(%s) = false, want true", filePath)
	}

	if Exists(filepath.Join(tmpDir, "missing")) {
		t.Errorf("Exists(missing) = true, want false")
	}

	if !IsRegularFile(filePath) {
		t.Errorf("IsRegularFile(%s) = false, want true", filePath)
	}

	if IsRegularFile(tmpDir) {
		t.Errorf("IsRegularFile(%s) = true, want false", tmpDir)
	}

	if !IsDirectory(tmpDir) || IsDirectory(filePath) {
		t.Errorf("IsDirectory() - unexpected result")
	}
}

func TestAccess(t *testing.T) {
	tmpDir := t.TempDir()

	canRead, err := HasReadAccess(tmpDir)
	if err != nil || !canRead {
		t.Errorf("HasReadAccess(%s) = %v, %v", tmpDir, canRead, err)
	}

	canWrite, err := HasWriteAccess(tmpDir)
	if err != nil || !canWrite {
		t.Errorf("HasWriteAccess(%s) = %v, %v", tmpDir, canWrite, err)
	}

	if _, err := HasReadAccess(filepath.Join(tmpDir, "missing")); err == nil {
		t.Errorf("HasReadAccess(missing) - expected an error")
	}
}

func TestCheckOutputLocation(t *testing.T) {
	tmpDir := t.TempDir()

	if err := CheckOutputLocation(filepath.Join(tmpDir, "Dockerfile.reversed")); err != nil {
		t.Errorf("CheckOutputLocation() - unexpected error: %v", err)
	}

	if err := CheckOutputLocation(filepath.Join(tmpDir, "missing", "Dockerfile")); err == nil {
		t.Errorf("CheckOutputLocation() - expected an error for a missing directory")
	}
}
