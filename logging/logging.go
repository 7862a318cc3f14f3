// Package logging builds the zap logger shared by the server and CLI.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const Development = "development"

// New returns a colored console logger for development and a JSON
// production logger for any other environment.
func New(env string) (*zap.Logger, error) {
	if strings.EqualFold(env, Development) || env == "" {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg.Build()
	}
	return zap.NewProductionConfig().Build()
}
