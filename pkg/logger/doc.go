// Package logger builds *slog.Logger values from functional options and
// provides attribute helpers with consistent keys.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithLevelName("debug"),
//	    logger.WithJSONFormatter(),
//	    logger.WithAttr(logger.Component("storage")),
//	)
//	log.Debug("name sanitized",
//	    logger.Target("windows"),
//	    logger.Rename("NUL.txt", "NUL_.txt"),
//	)
//
// The default logger writes text to stderr at INFO level.
//
// # Configuration
//
//   • WithFormat / WithTextFormatter / WithJSONFormatter – output format.
//   • WithLevel / WithLevelName – minimum level.
//   • WithOutput – destination writer.
//   • WithAttr – static attributes on every record.
//
// Invalid formats and level names panic when New applies the option, so a
// misconfigured program fails at startup.
//
// # Error Handling
//
// Error and Errors produce attributes only for non-nil errors:
//
//	log.Info("stored", logger.Error(err))
package logger
