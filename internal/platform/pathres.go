package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// symlinkMax bounds symlink-chasing the same way Linux's path_resolution(7)
// does, so a crafted symlink loop around target_device/mount_point can't
// hang the gate before C4 ever opens a device.
const symlinkMax = 40

// isSymlink reports whether path itself (not the file it may point to) is
// a symbolic link.
func isSymlink(path string) (bool, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return false, err
	}
	return fi.Mode()&os.ModeSymlink == os.ModeSymlink, nil
}

// ResolvePath resolves path to its final target, following at most
// symlinkMax symlinks, the same bound path_resolution(7) imposes. This
// runs before C4 opens target_device and before C3 unmounts mount_point,
// so a symlink substituted between config validation and device-open
// time can't redirect a destructive write onto the wrong device.
func ResolvePath(path string) (string, error) {
	resolved := path
	for i := 0; i < symlinkMax; i++ {
		link, err := isSymlink(resolved)
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", path, err)
		}
		if !link {
			return resolved, nil
		}

		target, err := os.Readlink(resolved)
		if err != nil {
			return "", fmt.Errorf("reading symlink %s: %w", resolved, err)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(resolved), target)
		}
		resolved = target
	}
	return "", fmt.Errorf("resolving %s: too many levels of symbolic links", path)
}
