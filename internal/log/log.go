package log

import (
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "ts",
			logrus.FieldKeyMsg:  "action",
		},
	})
	l.SetOutput(os.Stdout)
	return l
}

// Logger exposes the shared logrus instance for components that want their own entries.
func Logger() *logrus.Logger { return logger }

func SetOutput(w io.Writer) { logger.SetOutput(w) }

// SetLevel accepts logrus level names; unknown names keep the current level.
func SetLevel(level string) {
	if lvl, err := logrus.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
}

func write(level logrus.Level, kind string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	e := logger.WithField("kind", kind)
	if c != nil {
		e = e.WithFields(logrus.Fields{
			"ip":     c.IP(),
			"method": c.Method(),
			"path":   c.Path(),
			"status": c.Response().StatusCode(),
		})
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			e = e.WithField("req_id", rid)
		}
		if sid := c.Cookies("sid"); sid != "" {
			e = e.WithField("sid", sid)
		}
	}
	if err != nil {
		e = e.WithField("err", err.Error())
	}
	if len(fields) > 0 {
		e = e.WithField("fields", fields)
	}
	e.Log(level, action)
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(logrus.InfoLevel, "info", c, action, nil, fields)
}
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(logrus.InfoLevel, "audit", c, action, nil, fields)
}
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(logrus.WarnLevel, "security", c, action, nil, fields)
}
func Warn(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(logrus.WarnLevel, "warn", c, action, err, fields)
}
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(logrus.ErrorLevel, "error", c, action, err, fields)
}
