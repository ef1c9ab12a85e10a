// Package api exposes the tailoring pipeline over HTTP for editor plugins
// and local front-ends. The server is stateless: every request carries the
// full CV and job-description texts and gets the full result back.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davidlpuk/cv-tailor/internal/letter"
	"github.com/davidlpuk/cv-tailor/internal/pipeline"
)

// ErrorCode classifies API failures for clients.
type ErrorCode string

const (
	ErrorCodeInvalidJSON      ErrorCode = "INVALID_JSON"
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrorCodeInternalError    ErrorCode = "INTERNAL_ERROR"
)

// APIError is the JSON error envelope returned on every non-2xx response.
type APIError struct {
	Error     string    `json:"error"`
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// SendError writes the standard error envelope.
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string) {
	c.JSON(statusCode, &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// API holds the handler dependencies.
type API struct {
	pipeline *pipeline.Pipeline
	logger   *zap.Logger
}

// NewAPI creates the handler set around an assembled pipeline.
func NewAPI(p *pipeline.Pipeline, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{pipeline: p, logger: logger}
}

// SetupRoutes registers all routes on the router.
func SetupRoutes(router *gin.Engine, p *pipeline.Pipeline, logger *zap.Logger) {
	handler := NewAPI(p, logger)

	router.GET("/health", handler.HealthCheckHandler)
	router.POST("/tailor", handler.TailorHandler)
	router.POST("/score", handler.ScoreHandler)
}

// TailorRequest is the body of POST /tailor.
type TailorRequest struct {
	CVText    string `json:"cv_text"`
	JobText   string `json:"job_text"`
	UserName  string `json:"user_name,omitempty"`
	UserEmail string `json:"user_email,omitempty"`
}

// TailorHandler runs the full pipeline and returns every artifact.
func (a *API) TailorHandler(c *gin.Context) {
	var req TailorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, "Invalid JSON payload: "+err.Error())
		return
	}
	if req.CVText == "" {
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "cv_text is required")
		return
	}
	if req.JobText == "" {
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "job_text is required")
		return
	}

	result, err := a.pipeline.Run(c.Request.Context(), pipeline.Request{
		CVText:  req.CVText,
		JobText: req.JobText,
		User:    letter.UserInfo{Name: req.UserName, Email: req.UserEmail},
	})
	if err != nil {
		a.logger.Error("tailor request failed", zap.Error(err))
		SendError(c, http.StatusInternalServerError, ErrorCodeInternalError, err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// ScoreRequest is the body of POST /score.
type ScoreRequest struct {
	CVText  string `json:"cv_text"`
	JobText string `json:"job_text"`
}

// ScoreHandler recomputes the match score for caller-held texts, so a
// client can re-score after manual edits without a full tailoring run.
func (a *API) ScoreHandler(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, "Invalid JSON payload: "+err.Error())
		return
	}
	if req.CVText == "" {
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "cv_text is required")
		return
	}
	if req.JobText == "" {
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "job_text is required")
		return
	}

	breakdown, err := a.pipeline.ScoreOnly(c.Request.Context(), req.CVText, req.JobText)
	if err != nil {
		SendError(c, http.StatusInternalServerError, ErrorCodeInternalError, err.Error())
		return
	}

	c.JSON(http.StatusOK, breakdown)
}

// HealthCheckHandler reports liveness.
func (a *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "cv-tailor"})
}
