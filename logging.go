package trs

import (
	"go.uber.org/zap/zapcore"

	"github.com/StefanD986/java-trsfile/internal/tracelog"
)

// NewZapLogger builds the library's default structured logger, suitable
// for passing to WithLogger: a zap.SugaredLogger using a logfmt
// encoder, writing to stderr at level, tagged with a fresh correlation
// id so log lines from several concurrently open Readers or Writers can
// be told apart.
func NewZapLogger(level zapcore.Level) tracelog.L {
	return tracelog.NewZap(level)
}
