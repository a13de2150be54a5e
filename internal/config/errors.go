package config

import "errors"

// ErrInvalidConfig wraps every Validate and ConditionTable failure.
var ErrInvalidConfig = errors.New("invalid config")

// ErrLoadConfig wraps file, env and decoding failures in Load.
var ErrLoadConfig = errors.New("load config failed")
