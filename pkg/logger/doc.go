// Package logger builds *slog.Logger instances from functional options and
// provides attribute constructors used across the shortname packages.
//
// New picks a text or JSON handler and applies static attributes. Registered
// ContextExtractor callbacks add attributes taken from the context of each
// call; RunIDExtractor tags records with the ID set by WithRunID.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "shortname"),
//	    logger.WithContextExtractors(logger.RunIDExtractor),
//	)
//	logger.SetAsDefault(log)
//
//	ctx = logger.WithRunID(ctx, uuid.NewString())
//	log.LogAttrs(ctx, slog.LevelInfo, "short names adjusted",
//	    logger.Binding("name", "short_name"),
//	    logger.Count("updated", n),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
