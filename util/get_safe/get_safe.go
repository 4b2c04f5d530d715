package getsafe

// String reads a string value out of untyped metadata, returning "" when the
// key is absent or holds a non-string.
func String(payload map[string]any, key string) string {
	if v, ok := payload[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
