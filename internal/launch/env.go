package launch

import (
	"path/filepath"
	"strings"
)

// pathListSeparator is fixed to ':' because the launch target is a single
// Unix-like environment.
const pathListSeparator = ":"

// systemBinDirs are package-manager bin directories that GUI-launched
// processes often lack on PATH.
var systemBinDirs = []string{"/opt/homebrew/bin", "/usr/local/bin"}

// DefaultExtraDirs returns the directories prepended to PATH for every
// launch: the Antigravity CLI location under home, then the Homebrew
// prefixes. The home entry is skipped when home is empty.
func DefaultExtraDirs(home string) []string {
	dirs := make([]string, 0, len(systemBinDirs)+1)
	if home != "" {
		dirs = append(dirs, filepath.Join(home, ".antigravity", "antigravity", "bin"))
	}

	return append(dirs, systemBinDirs...)
}

// SpawnEnv returns a copy of environ whose PATH is extraDirs followed by the
// existing PATH entries, with empty entries dropped and duplicates removed
// (first occurrence wins). environ itself is never modified.
func SpawnEnv(environ, extraDirs []string) []string {
	env := make([]string, 0, len(environ)+1)
	existing := ""

	for _, kv := range environ {
		if value, ok := strings.CutPrefix(kv, "PATH="); ok {
			existing = value
			continue
		}
		env = append(env, kv)
	}

	parts := append(append([]string{}, extraDirs...), strings.Split(existing, pathListSeparator)...)

	return append(env, "PATH="+joinUnique(parts))
}

func joinUnique(parts []string) string {
	seen := make(map[string]struct{}, len(parts))
	ordered := make([]string, 0, len(parts))

	for _, part := range parts {
		if part == "" {
			continue
		}
		if _, dup := seen[part]; dup {
			continue
		}
		seen[part] = struct{}{}
		ordered = append(ordered, part)
	}

	return strings.Join(ordered, pathListSeparator)
}

// lookupEnv returns the last value of key in env, mirroring how the OS
// resolves duplicate entries.
func lookupEnv(env []string, key string) (string, bool) {
	prefix := key + "="
	value, found := "", false

	for _, kv := range env {
		if v, ok := strings.CutPrefix(kv, prefix); ok {
			value, found = v, true
		}
	}

	return value, found
}
