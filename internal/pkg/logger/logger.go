package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/restaurant-site/internal/config"
)

// New builds the application logger from the logging config. The standard
// logger is configured the same way so package-level logrus calls match.
func New(cfg config.LoggingConfig) *logrus.Logger {
	l := logrus.New()
	configure(l, cfg)
	configure(logrus.StandardLogger(), cfg)
	return l
}

func configure(l *logrus.Logger, cfg config.LoggingConfig) {
	l.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.EqualFold(cfg.Format, "text") {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
		return
	}
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
}
