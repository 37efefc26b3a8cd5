package config

import (
	"strconv"

	"github.com/apex/log"
)

// The helpers below implement the typed getters on top of a plain string
// lookup so each Configer only has to provide GetKey.

func mustGetKey(getKey func(string) string, key string) string {
	val := getKey(key)
	if val == "" {
		log.Fatalf("No such required config key: '%s'", key)
	}

	return val
}

func getKeyWithDefault(getKey func(string) string, key, defaultValue string) string {
	val := getKey(key)
	if val == "" {
		return defaultValue
	}

	return val
}

func getIntKeyWithDefault(getKey func(string) string, key string, defaultValue int) int {
	intVal, err := strconv.Atoi(getKey(key))
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getBoolKeyWithDefault(getKey func(string) string, key string, defaultValue bool) bool {
	boolVal, err := strconv.ParseBool(getKey(key))
	if err != nil {
		return defaultValue
	}

	return boolVal
}
