package multidb

import (
	"context"

	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/yusufsyaifudin/ylog"
)

// QueryLogger pipes driver-level query logs into the structured logger.
type QueryLogger struct{}

var _ sqldblogger.Logger = (*QueryLogger)(nil)

func (q *QueryLogger) Log(ctx context.Context, level sqldblogger.Level, msg string, data map[string]interface{}) {
	ylog.Debug(ctx, msg, ylog.KV("level", level), ylog.KV("sql", data))
}
