package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/ougirez/hcdash/internal/pkg/constants"
	"github.com/ougirez/hcdash/internal/pkg/logger"
	"github.com/ougirez/hcdash/internal/pkg/utils"
	"go.uber.org/zap"
)

// SessionMiddleware resolves the session cookie, opening a fresh session when
// the cookie is missing, forged, expired or names a swept session. The cookie
// is re-issued on every request, so it only expires after TTL of inactivity.
func (svc *APIService) SessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		req := ctx.Request()

		var id uuid.UUID
		if cookie, err := ctx.Cookie(constants.CookieKeySession); err == nil {
			token, err := utils.ParseSessionToken(cookie.Value, svc.secret)
			if err != nil {
				logger.Debugf(req.Context(), "ignoring session cookie: %s", err.Error())
			} else {
				id = token.SessionID
			}
		}

		id, _ = svc.sessionService.Open(req.Context(), id)

		token, err := utils.GenerateSessionToken(id, svc.secret, svc.sessionTTL)
		if err != nil {
			return err
		}
		ctx.SetCookie(&http.Cookie{
			Name:     constants.CookieKeySession,
			Value:    token,
			Path:     "/",
			MaxAge:   int(svc.sessionTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		ctx.Set(constants.CtxKeySessionID, id)
		ctx.SetRequest(req.WithContext(logger.With(req.Context(), "session_id", id.String())))

		return next(ctx)
	}
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.L().Info("request", fields...)
			return nil
		},
	})
}
