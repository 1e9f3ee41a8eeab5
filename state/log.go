package state

import (
	cosmoslog "cosmossdk.io/log"
	cmtlog "github.com/cometbft/cometbft/libs/log"
)

// treeLogger hands the commitment tree a cosmossdk.io/log view of the
// ledger's logger. cometbft has no warn level; warnings go out at info with
// a level tag.
type treeLogger struct {
	cmtlog.Logger
}

var _ cosmoslog.Logger = treeLogger{}

func newTreeLogger(logger cmtlog.Logger) cosmoslog.Logger {
	return treeLogger{Logger: logger.With("tree", "iavl")}
}

func (l treeLogger) Warn(msg string, keyVals ...any) {
	l.Logger.Info(msg, append(keyVals, "level", "warn")...)
}

func (l treeLogger) With(keyVals ...any) cosmoslog.Logger {
	return treeLogger{Logger: l.Logger.With(keyVals...)}
}

func (l treeLogger) Impl() any {
	return l.Logger
}
