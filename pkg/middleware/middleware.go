package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

const (
	XMemberID = "X-Member-Id"

	memberIDKey = "memberIDKey"
)

// MemberID requires the acting member to be identified by the upstream gateway.
func MemberID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		memberID := c.Request().Header.Get(XMemberID)
		if memberID == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "member id is empty")
		}
		c.Set(memberIDKey, memberID)
		return next(c)
	}
}

type Get interface {
	Get(string) any
}

func GetMemberID(getter Get) (string, error) {
	memberID, ok := getter.Get(memberIDKey).(string)
	if !ok || memberID == "" {
		return "", errors.New("no member id")
	}
	return memberID, nil
}

func NewRateLimiter(rps rate.Limit) echo.MiddlewareFunc {
	return middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rps))
}

func RequestLoggerConfig(log *zap.Logger) middleware.RequestLoggerConfig {
	log = log.Named("echo")
	return middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		HandleError:  true,
		LogError:     true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := zapcore.InfoLevel
			if v.Error != nil {
				level = zapcore.ErrorLevel
			}
			log.Log(level, "request",
				zap.String("URI", v.URI),
				zap.String("Method", v.Method),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.Error(v.Error),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}
}
