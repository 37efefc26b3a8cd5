package config

import (
	"os"

	"github.com/subosito/gotenv"
)

// DotenvConfig loads a dotenv file into the process environment and reads
// keys from the environment. With an empty path Load is a no-op, so the
// environment alone is used.
type DotenvConfig struct {
	DotenvPath string
}

func NewDotenvConfig(path string) *DotenvConfig {
	return &DotenvConfig{DotenvPath: path}
}

func (c *DotenvConfig) LoadFromPath(path string) error {
	c.DotenvPath = path
	return c.Load()
}

func (c *DotenvConfig) Load() error {
	if c.DotenvPath == "" {
		return nil
	}

	return gotenv.Load(c.DotenvPath)
}

func (c *DotenvConfig) GetKey(key string) string {
	return os.Getenv(key)
}

func (c *DotenvConfig) MustGetKey(key string) string {
	return mustGetKey(c.GetKey, key)
}

func (c *DotenvConfig) GetKeyWithDefault(key, defaultValue string) string {
	return getKeyWithDefault(c.GetKey, key, defaultValue)
}

func (c *DotenvConfig) GetIntKeyWithDefault(key string, defaultValue int) int {
	return getIntKeyWithDefault(c.GetKey, key, defaultValue)
}

func (c *DotenvConfig) GetBoolKeyWithDefault(key string, defaultValue bool) bool {
	return getBoolKeyWithDefault(c.GetKey, key, defaultValue)
}
