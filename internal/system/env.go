package system

import "strings"

// ChildEnv returns the variables forwarded to Python child processes so
// their output is UTF-8 regardless of the host locale.
func ChildEnv() []string {
	return []string{
		"PYTHONIOENCODING=utf-8",
		"LANG=en_US.UTF-8",
	}
}

// MergeEnv returns base with extra applied on top. A key in extra replaces
// every occurrence of the same key in base.
func MergeEnv(base, extra []string) []string {
	override := make(map[string]bool, len(extra))
	for _, kv := range extra {
		override[envKey(kv)] = true
	}

	merged := make([]string, 0, len(base)+len(extra))
	for _, kv := range base {
		if !override[envKey(kv)] {
			merged = append(merged, kv)
		}
	}
	return append(merged, extra...)
}

func envKey(kv string) string {
	if i := strings.IndexByte(kv, '='); i >= 0 {
		return kv[:i]
	}
	return kv
}
