package log

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var base = zap.NewNop()

// Init builds the process logger. logFile, when non-empty, is added as a
// second sink next to stdout.
func Init(logFile string) error {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncoderConfig.MessageKey = "action"
	cfg.OutputPaths = []string{"stdout"}
	if logFile != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, logFile)
	}
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	base = l
	return nil
}

func fieldsOf(c *fiber.Ctx, err error, fields map[string]any) []zap.Field {
	fs := make([]zap.Field, 0, len(fields)+6)
	if c != nil {
		fs = append(fs,
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
		)
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			fs = append(fs, zap.String("req_id", rid))
		}
	}
	if err != nil {
		fs = append(fs, zap.Error(err))
	}
	for k, v := range fields {
		fs = append(fs, zap.Any(k, v))
	}
	return fs
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	base.Info(action, fieldsOf(c, nil, fields)...)
}

// Audit records a state-changing action initiated through the UI.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	base.Info(action, append(fieldsOf(c, nil, fields), zap.String("kind", "audit"))...)
}

// Security records rejected or suspicious input.
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	base.Warn(action, fieldsOf(c, nil, fields)...)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	base.Error(action, fieldsOf(c, err, fields)...)
}
