// Package log provides a simplified structured logging interface based on
// [log/slog].
//
// Loggers are configured once, at creation time, using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
//	logger.Info("registry built", slog.Int("options", 4))
//
// A [Logger] is an immutable value; [Logger.Wrap] and [Logger.With] return
// derived copies. The zero Logger discards every record, so library types
// may embed one without requiring callers to configure logging.
//
// # Package-level logging
//
// The package keeps a default logger writing to [os.Stderr]. It is
// reconfigured with [Config] and used through [Debug], [Info], [Warn],
// [Error] and their *Context variants. Context-unaware functions use
// [DefaultContextProvider], which returns [context.TODO].
//
// # Levels and formats
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn] and [LevelError]. Output is either [FormatJSON] (default) or
// [FormatText]. With [WithPretty] enabled, text output is colorized using
// lipgloss styles.
package log
