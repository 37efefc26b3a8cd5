package config

import "os"

var configer Configer = &DotenvConfig{}

func SetConfig(c Configer) {
	configer = c
}

func GetConfig() Configer {
	return configer
}

// Select picks the Configer for a command: a viper config file when
// configPath is set, otherwise the dotenv file named by LABDB_DOTENV_PATH
// (or the bare environment when that is blank). The chosen Configer is
// loaded and installed as the package Configer.
func Select(configPath string) (Configer, error) {
	var c Configer
	if configPath != "" {
		c = NewViperConfig(configPath)
	} else {
		c = NewDotenvConfig(os.Getenv("LABDB_DOTENV_PATH"))
	}

	if err := c.Load(); err != nil {
		return nil, err
	}

	SetConfig(c)
	return c, nil
}

func LoadFromPath(path string) error {
	return configer.LoadFromPath(path)
}

func Load() error {
	return configer.Load()
}

func GetKey(key string) string {
	return configer.GetKey(key)
}

func MustGetKey(key string) string {
	return configer.MustGetKey(key)
}

func GetKeyWithDefault(key, defaultValue string) string {
	return configer.GetKeyWithDefault(key, defaultValue)
}

func GetIntKeyWithDefault(key string, defaultValue int) int {
	return configer.GetIntKeyWithDefault(key, defaultValue)
}

func GetBoolKeyWithDefault(key string, defaultValue bool) bool {
	return configer.GetBoolKeyWithDefault(key, defaultValue)
}
