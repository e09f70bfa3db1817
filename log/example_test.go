package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/pirate/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatText),
		log.WithPretty(false),
		log.WithTimeLayout("none"),
	)

	logger.Info("registry built", slog.Int("specs", 4))
	logger.Debug("hidden below info")

	// Output:
	// level=INFO msg="registry built" specs=4
}

func Example_levels() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelWarn),
		log.WithTimeLayout("none"),
	)

	logger.Info("info message")
	logger.Warn("warning message", slog.String("offender", "--bogus"))

	// Output:
	// {"level":"WARN","msg":"warning message","offender":"--bogus"}
}
