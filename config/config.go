package config

import (
	"lever/core"
)

// Config alias of core.Config
type Config = core.Config
