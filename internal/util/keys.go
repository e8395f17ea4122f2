package util

// VerifyKeys reports whether every key in keys is present in target. An
// empty keys slice is always satisfied.
func VerifyKeys(keys []string, target map[string]any) bool {
	for _, key := range keys {
		if _, ok := target[key]; !ok {
			return false
		}
	}
	return true
}
