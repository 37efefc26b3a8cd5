package config

import (
	"fmt"
	"sync"
)

// MapConfig serves keys from a fixed map. Used in tests.
type MapConfig struct {
	configValues sync.Map
}

func NewMapConfig(entries map[string]string) *MapConfig {
	c := &MapConfig{}

	for key, entry := range entries {
		c.configValues.Store(key, entry)
	}

	return c
}

func (c *MapConfig) LoadFromPath(_ string) error {
	return fmt.Errorf("LoadFromPath not supported for MapConfig")
}

func (c *MapConfig) Load() error {
	return nil
}

func (c *MapConfig) GetKey(key string) string {
	v, ok := c.configValues.Load(key)
	if !ok || v == nil {
		return ""
	}

	return v.(string)
}

func (c *MapConfig) MustGetKey(key string) string {
	return mustGetKey(c.GetKey, key)
}

func (c *MapConfig) GetKeyWithDefault(key, defaultValue string) string {
	return getKeyWithDefault(c.GetKey, key, defaultValue)
}

func (c *MapConfig) GetIntKeyWithDefault(key string, defaultValue int) int {
	return getIntKeyWithDefault(c.GetKey, key, defaultValue)
}

func (c *MapConfig) GetBoolKeyWithDefault(key string, defaultValue bool) bool {
	return getBoolKeyWithDefault(c.GetKey, key, defaultValue)
}
