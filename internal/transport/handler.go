package transport

import (
	"context"
	"io"
	"net/http"
	"time"

	"go-label-verifier/internal/config"
	apperrors "go-label-verifier/internal/errors"
	"go-label-verifier/internal/logger"
	"go-label-verifier/internal/observer"
	"go-label-verifier/internal/service"
	"go-label-verifier/pkg/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorResponse is the JSON body returned for failed requests
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// VerifyURLRequest is the JSON body for the verify-by-URL endpoint
type VerifyURLRequest struct {
	URL            string `json:"url" binding:"required"`
	BrandName      string `json:"brandName"`
	ProductClass   string `json:"productClass"`
	AlcoholContent string `json:"alcoholContent"`
	NetContents    string `json:"netContents"`
}

// NewHandler builds the HTTP handler with all routes and middleware.
func NewHandler(svc service.LabelVerificationService, metrics *observer.MetricsObserver, cfg *config.Config) http.Handler {
	r := gin.Default()

	r.Use(
		corsMiddleware(cfg),
		requestSizeLimiter(cfg.MaxUploadSize),
		errorHandler(),
	)

	api := r.Group("/api")
	api.GET("/health", healthCheck)
	api.GET("/metrics", metricsSnapshot(metrics))
	api.POST("/verify", verifyLabel(svc, cfg))
	api.POST("/verify-url", verifyLabelByURL(svc, cfg))

	return r
}

// verifyLabel handles multipart uploads: file field "image" plus the expected
// regulatory form fields.
func verifyLabel(svc service.LabelVerificationService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"ip":     c.ClientIP(),
		}).Info("Processing label verification request")

		fileHeader, err := c.FormFile("image")
		if err != nil {
			respondError(c, apperrors.NewValidationError("No image file provided", err))
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			respondError(c, apperrors.NewInternalError("Could not open uploaded file", err))
			return
		}
		defer file.Close()

		imageData, err := io.ReadAll(file)
		if err != nil {
			respondError(c, apperrors.NewInternalError("Could not read uploaded file", err))
			return
		}

		fields := models.ExpectedFields{
			BrandName:      c.PostForm("brandName"),
			ProductClass:   c.PostForm("productClass"),
			AlcoholContent: c.PostForm("alcoholContent"),
			NetContents:    c.PostForm("netContents"),
		}

		result, err := svc.VerifyImage(ctx, fileHeader.Filename, imageData, fields)
		if err != nil {
			respondError(c, err)
			return
		}

		logger.WithFields(logrus.Fields{
			"processing_time_ms": time.Since(startTime).Milliseconds(),
			"overall_match":      result.OverallMatch,
			"checks":             len(result.Checks),
		}).Info("Label verification completed")

		c.JSON(http.StatusOK, result)
	}
}

// verifyLabelByURL handles JSON requests referencing a label image by URL
// (HTTP or blob storage, depending on the configured backend).
func verifyLabelByURL(svc service.LabelVerificationService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		var req VerifyURLRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperrors.NewValidationError("invalid request format", err))
			return
		}

		fields := models.ExpectedFields{
			BrandName:      req.BrandName,
			ProductClass:   req.ProductClass,
			AlcoholContent: req.AlcoholContent,
			NetContents:    req.NetContents,
		}

		result, err := svc.VerifyImageURL(ctx, req.URL, fields)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func metricsSnapshot(metrics *observer.MetricsObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, metrics.Snapshot())
	}
}

// Middleware and helper functions

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	}
	return cors.New(corsCfg)
}

func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			respondError(c, c.Errors.Last())
		}
	}
}

func respondError(c *gin.Context, err error) {
	code := apperrors.GetStatusCode(err)
	body := ErrorResponse{Error: "An error occurred"}

	if appErr, ok := err.(*apperrors.AppError); ok {
		body.Error = appErr.Message
		if appErr.Details != "" {
			body.Details = appErr.Details
		} else if appErr.Cause != nil {
			body.Details = appErr.Cause.Error()
		}
	} else if err != nil {
		body.Details = err.Error()
	}

	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, body)
}
