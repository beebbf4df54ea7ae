// Package logging builds the service's zap loggers.
//
// Production loggers write JSON; development loggers write colored console
// lines at debug level. Library packages take a plain *zap.Logger and
// default to zap.NewNop(), so only binaries construct loggers here.
//
//	logger := logging.NewFromLevel(cfg.Logging.Level, cfg.Logging.Development)
//	defer logger.Sync()
//	ev := cfg.Evaluator(orthopoly.WithLogger(logger.Logger))
package logging
