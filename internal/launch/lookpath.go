package launch

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// statFunc is os.Stat, swappable in tests.
type statFunc func(string) (os.FileInfo, error)

// lookPath resolves name against the PATH found in env rather than the
// ambient process PATH, so directories prepended by SpawnEnv are honored.
// Names containing a slash are used as-is. A miss returns an *exec.Error
// wrapping exec.ErrNotFound.
func lookPath(name string, env []string, stat statFunc) (string, error) {
	if strings.Contains(name, "/") {
		if err := checkExecutable(name, stat); err != nil {
			return "", &exec.Error{Name: name, Err: err}
		}
		return name, nil
	}

	pathList, _ := lookupEnv(env, "PATH")
	for _, dir := range strings.Split(pathList, pathListSeparator) {
		// Never resolve relative to the working directory.
		if dir == "" || !filepath.IsAbs(dir) {
			continue
		}
		candidate := filepath.Join(dir, name)
		if checkExecutable(candidate, stat) == nil {
			return candidate, nil
		}
	}

	return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}

func checkExecutable(path string, stat statFunc) error {
	info, err := stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return os.ErrPermission
	}
	if info.Mode().Perm()&0o111 == 0 {
		return os.ErrPermission
	}

	return nil
}
