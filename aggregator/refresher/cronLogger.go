package refresher

import (
	logger "github.com/multiversx/mx-chain-logger-go"
)

// cronLogger routes the cron scheduler logs through the package logger
type cronLogger struct {
	log logger.Logger
}

// Info -
func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.log.Trace("cron: "+msg, keysAndValues...)
}

// Error -
func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	cl.log.Error("cron: "+msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
