package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config diparse oleh configs.Load lewat caarlos0/env.
type Config struct {
	Level      string `env:"LOG_LEVEL" envDefault:"info"`
	Format     string `env:"LOG_FORMAT" envDefault:"text"`   // text | json
	Output     string `env:"LOG_OUTPUT" envDefault:"stdout"` // stdout | file | both
	Path       string `env:"LOG_PATH" envDefault:"./logs"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"100"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"7"`
	MaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"7"`
}

func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "text",
		Output:     "stdout",
		Path:       "./logs",
		MaxSizeMB:  100,
		MaxBackups: 7,
		MaxAgeDays: 7,
	}
}

var (
	loggers   = make(map[string]*logrus.Logger)
	loggersMu sync.Mutex
	config    *Config
)

// Init memasang konfigurasi global. Logger yang sudah dibuat sebelumnya dibuang.
func Init(cfg Config) error {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if cfg.Output == "file" || cfg.Output == "both" {
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
	}
	config = &cfg
	loggers = make(map[string]*logrus.Logger)
	return nil
}

// Get mengembalikan logger bernama (app, report, db, http). Dibuat sekali per nama.
func Get(name string) *logrus.Logger {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if config == nil {
		def := DefaultConfig()
		config = &def
	}
	if l, ok := loggers[name]; ok {
		return l
	}
	l := newLogger(name, *config)
	loggers[name] = l
	return l
}

// Discard dipakai test supaya output tidak berisik.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newLogger(name string, cfg Config) *logrus.Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
			CallerPrettyfier: func(f *runtime.Frame) (string, string) {
				s := strings.Split(f.Function, ".")
				return s[len(s)-1], fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
			},
		})
	}

	var writers []io.Writer
	if cfg.Output == "file" || cfg.Output == "both" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Path, name+".log"),
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		})
	}
	if cfg.Output != "file" {
		writers = append(writers, os.Stdout)
	}
	l.SetOutput(io.MultiWriter(writers...))
	l.AddHook(nameHook(name))

	return l
}

// nameHook menempelkan field "logger" ke setiap entry.
type nameHook string

func (h nameHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h nameHook) Fire(e *logrus.Entry) error {
	if _, ok := e.Data["logger"]; !ok {
		e.Data["logger"] = string(h)
	}
	return nil
}
