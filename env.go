package voyagekit

import "os"

// GetEnvOrDefault reads an environment variable, falling back to
// defaultValue when unset or empty.
func GetEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}
