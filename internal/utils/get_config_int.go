package utils

import (
	"strconv"
)

// GetConfigInt reads a numeric config key, falling back to def when the key
// is unset or not a number.
func GetConfigInt(key string, def int) int {
	raw := GetConfig(key)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}
