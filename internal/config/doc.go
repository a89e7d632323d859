// Package config provides Pagestorm configuration.
//
// Settings are read in layers, higher layers overriding lower:
//
//  1. Built-in defaults
//  2. The TOML settings file
//  3. PAGESTORM_ environment variables
//
// and decoded into a typed Config:
//
//	[logging]
//	level = "info"        # debug, info, warn, error
//	file = ""             # log to stderr when empty
//
//	[identifiers]
//	strategy = "counter"  # counter or uuid
//	prefix = ""
//
//	[history]
//	maxVersions = 0       # 0 keeps every version
//
//	[script]
//	operationLimit = 100000  # 0 is unlimited
//	timeout = "30s"
//
//	[export]
//	format = "toml"       # toml or json
//
// Basic usage:
//
//	cfg, err := config.Load(config.WithFile("pagestorm.toml"))
//	if err != nil {
//	    // errors.Is(err, config.ErrValidationFailed)
//	}
package config
