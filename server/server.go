package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/code-payments/flipchat-moderation/image"
	"github.com/code-payments/flipchat-moderation/moderation"
	"github.com/code-payments/flipchat-moderation/s3"
)

const defaultMaxBodyBytes = 20 << 20

type Server struct {
	log *zap.Logger

	images  *moderation.ImageModerator
	texts   *moderation.TextModerator
	objects s3.Store

	maxBodyBytes int64
}

type TextRequest struct {
	Text string `json:"text"`
}

type ImageResponse struct {
	moderation.Summary
	Image *image.Info `json:"image,omitempty"`
}

// MarshalJSON adds the image info to the summary's own rendering, which would
// otherwise be promoted from the embedded Summary.
func (r ImageResponse) MarshalJSON() ([]byte, error) {
	summary, err := json.Marshal(r.Summary)
	if err != nil || r.Image == nil {
		return summary, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(summary, &fields); err != nil {
		return nil, err
	}
	info, err := json.Marshal(r.Image)
	if err != nil {
		return nil, err
	}
	fields["image"] = info

	return json.Marshal(fields)
}

type errorResponse struct {
	Message string `json:"message"`
}

// NewServer returns a moderation HTTP server. objects may be nil, in which case
// object storage routes are rejected.
func NewServer(
	log *zap.Logger,
	images *moderation.ImageModerator,
	texts *moderation.TextModerator,
	objects s3.Store,
	maxBodyBytes int64,
) *Server {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &Server{
		log:          log,
		images:       images,
		texts:        texts,
		objects:      objects,
		maxBodyBytes: maxBodyBytes,
	}
}

func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), s.logRequests)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	v1.POST("/moderate/text", s.moderateText)
	v1.POST("/moderate/image", s.moderateImage)
	v1.PUT("/objects/*key", s.putObject)

	return router
}

func (s *Server) moderateText(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}

	result, err := s.texts.Moderate(c.Request.Context(), req.Text)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, moderation.Summarize(result))
}

func (s *Server) moderateImage(c *gin.Context) {
	var (
		content []byte
		err     error
	)
	if key := c.Query("key"); key != "" {
		content, err = s.download(c, key)
	} else {
		content, err = s.readBody(c)
	}
	if err != nil {
		s.writeError(c, err)
		return
	}

	result, err := s.images.Moderate(c.Request.Context(), content)
	if err != nil {
		s.writeError(c, err)
		return
	}

	resp := ImageResponse{Summary: moderation.Summarize(result)}
	if info, err := image.Inspect(content); err == nil {
		resp.Image = info
	} else {
		s.log.Debug("Image not decodable", zap.Error(err))
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) putObject(c *gin.Context) {
	if s.objects == nil {
		s.writeError(c, errObjectsDisabled)
		return
	}

	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Message: "key cannot be empty"})
		return
	}

	content, err := s.readBody(c)
	if err != nil {
		s.writeError(c, err)
		return
	}

	if err := s.objects.Upload(c.Request.Context(), key, content); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"key": key, "size": len(content)})
}

func (s *Server) download(c *gin.Context, key string) ([]byte, error) {
	if s.objects == nil {
		return nil, errObjectsDisabled
	}
	return s.objects.Download(c.Request.Context(), key)
}

func (s *Server) readBody(c *gin.Context) ([]byte, error) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBodyBytes)
	return io.ReadAll(body)
}

var errObjectsDisabled = errors.New("object storage is not configured")

func (s *Server) writeError(c *gin.Context, err error) {
	var (
		validationErr *moderation.ValidationError
		analysisErr   *moderation.AnalysisError
		tooLarge      *http.MaxBytesError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.As(err, &analysisErr):
		status = http.StatusBadGateway
	case errors.Is(err, s3.ErrNotFound):
		status = http.StatusNotFound
	case errors.As(err, &tooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, errObjectsDisabled):
		status = http.StatusNotImplemented
	}

	if status >= http.StatusInternalServerError {
		s.log.Warn("Moderation request failed", zap.Int("status", status), zap.Error(err))
	}
	c.JSON(status, errorResponse{Message: err.Error()})
}

func (s *Server) logRequests(c *gin.Context) {
	c.Next()

	s.log.Debug("Handled request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", c.Writer.Status()),
	)
}
