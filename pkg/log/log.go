// pkg/log/log.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger adds call stacks to slog records and tolerates being nil, so
// that packages can hold a *Logger without checking whether one was
// provided.
type Logger struct {
	*slog.Logger
	LogFile string
	LogDir  string
}

// ParseLevel maps the textual log levels accepted on the command line and
// in configuration files to slog levels.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%s: invalid log level", level)
	}
}

// New returns a Logger that writes JSON records to a rotating log file in
// the given directory. If dir is empty, the user's config directory is
// used.
func New(level string, dir string) *Logger {
	if dir == "" {
		if cdir, err := os.UserConfigDir(); err != nil {
			fmt.Fprintf(os.Stderr, "Unable to find user config dir: %v\n", err)
			dir = "."
		} else {
			dir = filepath.Join(cdir, "glstate")
		}
	}

	lvl, err := ParseLevel(level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "glstate.slog"),
		MaxSize:    32, // MB
		MaxBackups: 1,
	}
	if lvl == slog.LevelDebug {
		// Traces of per-draw state changes add up quickly.
		w.MaxSize = 512
	}

	l := NewWriter(w, lvl)
	l.LogFile = w.Filename
	l.LogDir = dir
	l.logStartup()
	return l
}

// NewWriter returns a Logger that writes JSON records to w at the given
// level; it is mostly useful for tests and command-line tools that don't
// want a log file.
func NewWriter(w io.Writer, level slog.Level) *Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(h)}
}

// logStartup records the platform and the versions of the graphics
// bindings so that logs from different machines can be compared.
func (l *Logger) logStartup() {
	attrs := []any{
		slog.Time("start", time.Now()),
		slog.String("GOARCH", runtime.GOARCH),
		slog.String("GOOS", runtime.GOOS),
		slog.Int("NumCPUs", runtime.NumCPU()),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		attrs = append(attrs, slog.String("go", bi.GoVersion), slog.String("path", bi.Path))

		var deps []any
		for _, dep := range bi.Deps {
			if dep.Replace != nil {
				dep = dep.Replace
			}
			deps = append(deps, slog.String(dep.Path, dep.Version))
		}
		attrs = append(attrs, slog.Group("deps", deps...))
	}

	l.Info("Starting", attrs...)
}

// emit logs a record at the given level with the call stack of the
// function that called the public logging method. Debug and info records
// sent to a nil Logger are dropped, while warnings and errors go to the
// default slog logger.
func (l *Logger) emit(level slog.Level, msg string, args []any) {
	var sl *slog.Logger
	if l != nil {
		sl = l.Logger
	} else if level >= slog.LevelWarn {
		sl = slog.Default()
	} else {
		return
	}
	if !sl.Enabled(context.Background(), level) {
		return
	}

	// Skip runtime.Callers, callstack, emit, and the public method.
	cs := callstack(nil, 4)
	sl.Log(context.Background(), level, msg, append([]any{slog.Any("callstack", cs)}, args...)...)
}

// Note that only the methods below include callstacks; the rest of the
// slog interface (Log, WarnContext, ...) is passed through unchanged.

func (l *Logger) Debug(msg string, args ...any) { l.emit(slog.LevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.emit(slog.LevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.emit(slog.LevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.emit(slog.LevelError, msg, args) }

// Debugf and the other ...f variants log just a message, formatted
// printf-style.
func (l *Logger) Debugf(msg string, args ...any) {
	l.emit(slog.LevelDebug, fmt.Sprintf(msg, args...), nil)
}

func (l *Logger) Infof(msg string, args ...any) {
	l.emit(slog.LevelInfo, fmt.Sprintf(msg, args...), nil)
}

func (l *Logger) Warnf(msg string, args ...any) {
	l.emit(slog.LevelWarn, fmt.Sprintf(msg, args...), nil)
}

func (l *Logger) Errorf(msg string, args ...any) {
	l.emit(slog.LevelError, fmt.Sprintf(msg, args...), nil)
}

func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{
		Logger:  l.Logger.With(args...),
		LogFile: l.LogFile,
		LogDir:  l.LogDir,
	}
}

// CatchAndReportCrash should be deferred at the top of main and of any
// goroutine that owns a graphics context. It recovers a panic, logs it,
// prints a crash report with the build settings and stack, and also
// writes the report next to the log file. The recovered value is
// returned.
func (l *Logger) CatchAndReportCrash() any {
	// Let the debugger stop at the panic instead.
	if dlv, ok := os.LookupEnv("_"); ok && strings.HasSuffix(dlv, "/dlv") {
		return nil
	}

	err := recover()
	if err == nil {
		return nil
	}

	l.Errorf("Crashed: %v", err)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Crashed: %v\nSys: %s/%s\n", err, runtime.GOARCH, runtime.GOOS)
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range bi.Settings {
			fmt.Fprintf(&sb, "%s: %s\n", setting.Key, setting.Value)
		}
	}
	sb.Write(debug.Stack())
	report := sb.String()

	fmt.Fprintln(os.Stderr, report)

	if l != nil && l.LogDir != "" {
		fn := filepath.Join(l.LogDir, "crash-"+time.Now().Format("20060102-150405")+".txt")
		if werr := os.WriteFile(fn, []byte(report), 0o600); werr != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", fn, werr)
		}
	}

	return err
}
