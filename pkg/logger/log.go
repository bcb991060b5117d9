package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger собирает логгер с двумя выходами: консоль для разработки
// и файл ./logs/app.log для разбора инцидентов. Время пишем в ISO8601,
// чтобы записи из файла было удобно сопоставлять с логами БД.
func NewLogger() *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	cfg := zap.Config{
		Encoding:         "console",
		Level:            zap.NewAtomicLevelAt(zap.DebugLevel),
		OutputPaths:      []string{"stdout", "./logs/app.log"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    encoderConfig,
	}

	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}

	return log
}
