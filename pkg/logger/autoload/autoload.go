// Package autoload initializes the global logger from LOG_* environment
// variables on import. Blank-import it from main.
package autoload

import (
	configx "github.com/tanpawarit/stackaudit/pkg/config"
	logx "github.com/tanpawarit/stackaudit/pkg/logger"
)

func init() {
	cfg := configx.MustNew[logx.Config]("LOG")
	logx.Init(*cfg)
}
