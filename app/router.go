// Package app wires the HTTP surface together
package app

import (
	"context"
	"fmt"
	"time"

	"whispr/feedback-api/app/message"
	"whispr/feedback-api/app/root"
	"whispr/feedback-api/app/user"
	"whispr/feedback-api/db"
	"whispr/feedback-api/internal"
	"whispr/feedback-api/internal/service"
	"whispr/feedback-api/pkg/middleware"
	"whispr/feedback-api/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

func NewRouter() (*gin.Engine, error) {
	makeLogger()

	d := &internal.Deps{
		Argon:   security.New(),
		Mailer:  service.SMTPMailer{},
		Suggest: service.NewOpenAISuggester(),
		Now:     time.Now,
	}

	mongo, err := db.New(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MongoDB store, %w", err)
	}
	d.DB = mongo

	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("host.cors"),
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "TurnstileToken"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("user_id", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	jwt := middleware.NewJWTMiddleware(d.DB)
	turnstile := middleware.NewTurnstileMiddleware()
	rateLimit := viper.GetInt("security.rate_limit")
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
		CleanupInterval:   time.Second,
	})

	m := router.Group("/api", rateLimiter, middleware.BodySizeLimiter(64<<10))
	{
		// HEAD /api/heartbeat			-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)

		// GET /api/validate			-> Validates a session cookie
		m.GET("/validate", jwt, root.Validate)

		// GET /api/check-username-unique	-> Checks if a username is still free
		m.GET("/check-username-unique", cacheFor(10), func(c *gin.Context) { user.CheckUsernameUnique(c, d) })

		// POST /api/sign-up			-> Registers an account and mails the OTP
		m.POST("/sign-up", func(c *gin.Context) { user.SignUp(c, d) })

		// POST /api/verify-code		-> Verifies an account with the mailed OTP
		m.POST("/verify-code", func(c *gin.Context) { user.VerifyCode(c, d) })

		// POST /api/login			-> Logs in a verified account
		m.POST("/login", func(c *gin.Context) { user.Login(c, d) })

		// GET /api/accept-messages		-> Returns the caller's accept-messages flag
		m.GET("/accept-messages", jwt, func(c *gin.Context) { message.AcceptStatus(c, d) })

		// POST /api/accept-messages		-> Sets the caller's accept-messages flag
		m.POST("/accept-messages", jwt, func(c *gin.Context) { message.SetAcceptStatus(c, d) })

		// POST /api/send-messages		-> Anonymous message intake
		m.POST("/send-messages", turnstile, func(c *gin.Context) { message.Send(c, d) })

		// GET /api/get-messages		-> Lists the caller's messages, newest first
		m.GET("/get-messages", jwt, func(c *gin.Context) { message.List(c, d) })

		// DELETE /api/delete-message/:id	-> Deletes one of the caller's messages
		m.DELETE("/delete-message/:id", jwt, func(c *gin.Context) { message.Delete(c, d) })

		// POST /api/suggest-messages		-> AI-suggested messages for senders
		m.POST("/suggest-messages", cacheFor(30), func(c *gin.Context) { message.Suggest(c, d) })
	}

	// Unverified accounts whose code lapsed get swept out eventually
	service.AccountCleanup(
		time.Hour*24,
		time.Hour*24*time.Duration(viper.GetInt("cleanup.retention_days")),
		d.DB,
	)

	return router, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(logLevel())

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func logLevel() zapcore.Level {
	switch viper.GetString("app.log_level") {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
