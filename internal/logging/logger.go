package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/2beens/bedgemon/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerSetupParams struct {
	// LogFileName is the rotating log file; empty means STDOUT only.
	// A path without the .log suffix gets it appended.
	LogFileName   string
	LogToStdout   bool
	LogLevel      string
	LogFormatJSON bool
	Environment   string
	// ServiceName is added to every entry as the "service" field.
	ServiceName string

	SentryEnabled bool
	SentryDSN     string
	SentryRelease string
}

func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	logrus.SetLevel(GetLevel(params.LogLevel))

	if params.ServiceName != "" {
		logrus.AddHook(&serviceFieldHook{service: params.ServiceName})
	}

	if params.SentryEnabled {
		err := sentry.Init(sentry.ClientOptions{
			Environment:      params.Environment,
			Dsn:              params.SentryDSN,
			Release:          params.SentryRelease,
			ServerName:       params.ServiceName,
			TracesSampleRate: 1.0,
			AttachStacktrace: true,
		})
		if err != nil {
			logrus.Errorf("sentry.Init: %s", err)
		} else {
			logrus.AddHook(NewSentryHook([]logrus.Level{
				logrus.PanicLevel,
				logrus.FatalLevel,
				logrus.ErrorLevel,
			}))
			logrus.Infoln("Sentry set up successfully")
		}
	}

	logrus.SetOutput(logOutput(params))
}

func logOutput(params LoggerSetupParams) io.Writer {
	if params.LogFileName == "" {
		logrus.Println("writing logs only to STDOUT")
		return os.Stdout
	}

	fileName := params.LogFileName
	if filepath.Ext(fileName) != ".log" {
		fileName += ".log"
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:  fileName,
		MaxSize:   50,    // megabytes
		LocalTime: false, // false -> use UTC
		Compress:  true,  // disabled by default
		// keep rotated workout sync logs for a year
		MaxAge: 365, // days
	}

	if params.LogToStdout {
		logrus.Printf("writing logs to [%s] and STDOUT", fileName)
		return pkg.NewCombinedWriter(os.Stdout, lumberJackLogger)
	}
	logrus.Printf("writing logs to [%s]", fileName)
	return lumberJackLogger
}

type serviceFieldHook struct {
	service string
}

func (h *serviceFieldHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *serviceFieldHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["service"]; !ok {
		entry.Data["service"] = h.service
	}
	return nil
}

func GetLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "info":
		return logrus.InfoLevel
	case "trace":
		return logrus.TraceLevel
	case "warn", "warning":
		return logrus.WarnLevel
	default:
		return logrus.TraceLevel
	}
}
