// Package logging builds the process logger: console output for operators
// plus a size-rotated file for later inspection.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New constructs the shared SugaredLogger. The file sink rotates at 10 MB
// with a week of retention; the console sink stays at info level so gameplay
// debug noise lands only in the file.
func New(filePath string) (*zap.SugaredLogger, error) {
	rotated := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
	encoder := zapcore.NewConsoleEncoder(encCfg)

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(rotated), zapcore.DebugLevel),
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), zapcore.InfoLevel),
	)

	return zap.New(core, zap.AddCaller()).Sugar(), nil
}
