/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

import (
	"math"

	"github.com/pelletier/go-toml"
)

var config *toml.Tree

// LoadConfig loads the MobiFD configuration from the specified configuration file.
func LoadConfig(file string) {
	var err error
	config, err = toml.LoadFile(file)
	if err != nil {
		LogFatal("Config", "Unable to load configuration file: ", err)
	}
}

// LoadConfigString loads the MobiFD configuration from a TOML string.
func LoadConfigString(contents string) {
	var err error
	config, err = toml.Load(contents)
	if err != nil {
		LogFatal("Config", "Unable to load configuration: ", err)
	}
}

// GetConfigIntDefault returns the integer configuration value at the specified key or the specified default value if it does not exist.
func GetConfigIntDefault(key string, def int) int {
	if config == nil {
		return def
	}
	valRaw := config.Get(key)
	if valRaw == nil {
		return def
	}
	val, ok := valRaw.(int64)
	if ok && val >= math.MinInt32 && val <= math.MaxInt32 {
		return int(val)
	}
	return def
}

// GetConfigStringDefault returns the string configuration value at the specified key or the specified default value if it does not exist.
func GetConfigStringDefault(key string, def string) string {
	if config == nil {
		return def
	}
	valRaw := config.Get(key)
	if valRaw == nil {
		return def
	}
	val, ok := valRaw.(string)
	if ok {
		return val
	}
	return def
}

// GetConfigUint16Default returns the integer configuration value at the specified key or the specified default value if it does not exist.
func GetConfigUint16Default(key string, def uint16) uint16 {
	if config == nil {
		return def
	}
	valRaw := config.Get(key)
	if valRaw == nil {
		return def
	}
	val, ok := valRaw.(int64)
	if ok && val > 0 && val <= math.MaxUint16 {
		return uint16(val)
	}
	return def
}

// GetConfigBoolDefault returns the boolean configuration value at the specified key or the specified default value if it does not exist.
func GetConfigBoolDefault(key string, def bool) bool {
	if config == nil {
		return def
	}
	valRaw := config.Get(key)
	if valRaw == nil {
		return def
	}
	val, ok := valRaw.(bool)
	if ok {
		return val
	}
	return def
}
