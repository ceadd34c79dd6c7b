package utils

import (
	"log"
	"os"
	"strconv"
)

// lookupEnv parses key with parse, falling back to defaultValue when the variable is
// unset or unparsable.
func lookupEnv[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	value, err := parse(raw)
	if err != nil {
		log.Printf("Error parsing %s: %v, will use default value", key, err)
		return defaultValue
	}
	return value
}

func GetEnvString(key, defaultValue string) string {
	return lookupEnv(key, defaultValue, func(raw string) (string, error) { return raw, nil })
}

func GetEnvInt(key string, defaultValue int) int {
	return lookupEnv(key, defaultValue, strconv.Atoi)
}

func GetEnvBool(key string, defaultValue bool) bool {
	return lookupEnv(key, defaultValue, strconv.ParseBool)
}

func GetEnvFloat(key string, defaultValue float64) float64 {
	return lookupEnv(key, defaultValue, func(raw string) (float64, error) {
		return strconv.ParseFloat(raw, 64)
	})
}
