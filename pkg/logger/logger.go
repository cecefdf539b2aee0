package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	Logger *zap.Logger
}

var (
	ProductionMode  = "production"
	DevelopmentMode = "development"
	// ReleaseMode is the APP_MODE value servers run with in production.
	ReleaseMode = "release"
)

// Options tune where log lines go. FilePath enables a rotated JSON file.
type Options struct {
	Mode     string
	FilePath string
}

func New(mode string) *Logger {
	return NewWithOptions(Options{Mode: mode})
}

func NewWithOptions(opts Options) *Logger {
	var config zap.Config
	if IsProduction(opts.Mode) {
		config = zap.NewProductionConfig()
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapLogger, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}

	if opts.FilePath != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(rotator), zap.InfoLevel)
		zapLogger = zapLogger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, fileCore)
		}))
	}

	return &Logger{Logger: zapLogger}
}

// IsProduction reports whether mode selects the JSON production encoder.
func IsProduction(mode string) bool {
	return mode == ProductionMode || mode == ReleaseMode
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

type ctxKey string

var RequestIdKey ctxKey = "request_id"
var UserIdKey ctxKey = "user_id"

// RequestIDFromContext returns the id set by the request id middleware.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	requestId, _ := ctx.Value(RequestIdKey).(string)
	return requestId
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIdKey, userID)
}

func (l *Logger) withContext(ctx context.Context) *zap.Logger {
	var fields []zap.Field
	if ctx != nil {
		if requestId, ok := ctx.Value(RequestIdKey).(string); ok {
			fields = append(fields, zap.String(string(RequestIdKey), requestId))
		}
		if userId, ok := ctx.Value(UserIdKey).(string); ok {
			fields = append(fields, zap.String(string(UserIdKey), userId))
		}
	}
	return l.Logger.With(fields...)
}

var logger *Logger

func SetGlobalLogger(l *Logger) {
	logger = l
}

func GetGlobalLogger() *Logger {
	return logger
}

func (l *Logger) Infof(template string, args ...interface{}) {
	l.Logger.Sugar().Infof(template, args...)
}

func (l *Logger) Warnf(template string, args ...interface{}) {
	l.Logger.Sugar().Warnf(template, args...)
}

func (l *Logger) Errorf(template string, args ...interface{}) {
	l.Logger.Sugar().Errorf(template, args...)
}

func (l *Logger) InfoCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.withContext(ctx).Info(msg, fields...)
}

func (l *Logger) WarnCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.withContext(ctx).Warn(msg, fields...)
}

func (l *Logger) ErrorCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.withContext(ctx).Error(msg, fields...)
}

// Sync flushes buffered entries. Syncing stdout fails on some platforms, so the error is dropped.
func (l *Logger) Sync() {
	_ = l.Logger.Sync()
}
