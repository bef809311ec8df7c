// Package logging 构建 srcstats 使用的 zap logger。
// 日志统一写到 stderr，避免和 stdout 上的 JSON/YAML 报告混在一起。
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options 是 logger 的配置。
type Options struct {
	// Level 是 debug/info/warn/error 之一。
	Level string
	// Format 是 console 或 json。
	Format string
}

// New 创建写到 stderr 的 logger。
func New(options Options) (*zap.Logger, error) {
	return NewWithWriter(options, zapcore.Lock(zapcore.AddSync(os.Stderr)))
}

// NewWithWriter 创建写到指定输出的 logger。
//
// ERROR 以下的日志不带 caller，ERROR 及以上带 caller 与堆栈。
func NewWithWriter(options Options, ws zapcore.WriteSyncer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(options.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.EncodeDuration = zapcore.StringDurationEncoder

	encNoCaller := enc
	encNoCaller.CallerKey = ""

	encWithCaller := enc
	encWithCaller.CallerKey = "caller"
	encWithCaller.EncodeCaller = zapcore.ShortCallerEncoder

	var encA, encB zapcore.Encoder
	switch strings.ToLower(options.Format) {
	case "json":
		encA = zapcore.NewJSONEncoder(encNoCaller)
		encB = zapcore.NewJSONEncoder(encWithCaller)
	case "console", "":
		encA = zapcore.NewConsoleEncoder(encNoCaller)
		encB = zapcore.NewConsoleEncoder(encWithCaller)
	default:
		return nil, fmt.Errorf("unknown log format %q", options.Format)
	}

	coreNoCaller := zapcore.NewCore(encA, ws, zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= level && lvl < zapcore.ErrorLevel
	}))
	coreWithCaller := zapcore.NewCore(encB, ws, zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= level && lvl >= zapcore.ErrorLevel
	}))

	return zap.New(
		zapcore.NewTee(coreNoCaller, coreWithCaller),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}
