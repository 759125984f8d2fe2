package cli

import "go.uber.org/zap"

// agentLogger wraps zap for verbose debug output, stamping every line
// with the dump id so interleaved runs stay distinguishable.
type agentLogger struct {
	sugared *zap.SugaredLogger
	dumpID  string
}

func newAgentLogger(globals *Globals, dumpID string) *agentLogger {
	if globals == nil || !globals.Verbose {
		return &agentLogger{}
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.Encoding = "json"
	logger, _ := cfg.Build()
	return &agentLogger{
		sugared: logger.Sugar(),
		dumpID:  dumpID,
	}
}

func (l *agentLogger) Debug(format string, args ...interface{}) {
	if l.sugared == nil {
		return
	}
	l.sugared.With("dump_id", l.dumpID).Debugf(format, args...)
}
