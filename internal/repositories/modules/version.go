package modules

import (
	"strconv"
	"strings"
)

// majorVersion returns the first numeric component of v, skipping leading
// non-digits such as ">=" or "v".
func majorVersion(v string) (int, bool) {
	v = strings.TrimLeftFunc(strings.TrimSpace(v), func(r rune) bool { return r < '0' || r > '9' })
	if i := strings.IndexByte(v, '.'); i >= 0 {
		v = v[:i]
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsCompatible reports whether an instance running version satisfies the
// comma-separated version range. An empty range matches everything;
// otherwise one specifier must share the instance's major version.
func IsCompatible(versionRange, version string) bool {
	var specs []string
	for _, s := range strings.Split(versionRange, ",") {
		if s = strings.TrimSpace(s); s != "" {
			specs = append(specs, s)
		}
	}
	if len(specs) == 0 {
		return true
	}

	target, ok := majorVersion(version)
	if !ok {
		return false
	}
	for _, s := range specs {
		if major, ok := majorVersion(s); ok && major == target {
			return true
		}
	}
	return false
}
