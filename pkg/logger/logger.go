// Package logger 基于zap的结构化日志
//
// 配置项与config.LogConfig对应：
//   - level: debug | info | warn | error
//   - format: console | json
//   - output: stdout | stderr | /path/to/file
//   - enable_caller: 是否记录调用位置
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options 日志选项
type Options struct {
	Level        string
	Format       string
	Output       string
	EnableCaller bool
}

// New 创建Logger
func New(opts Options) (*zap.Logger, error) {
	// 1. 日志级别
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(opts.Level))); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}

	// 2. 编码格式
	encoding := "console"
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	if strings.EqualFold(opts.Format, "json") {
		encoding = "json"
		encoderCfg = zap.NewProductionEncoderConfig()
	}
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	// 3. 输出位置
	output := opts.Output
	if output == "" {
		output = "stdout"
	}

	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{output},
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     !opts.EnableCaller,
		DisableStacktrace: level > zapcore.DebugLevel,
	}

	return cfg.Build()
}
