package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"ojt-tracker/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxAudioSize = 10 << 20

var allowedAudioExt = map[string]bool{
	".webm": true, ".ogg": true, ".mp3": true, ".m4a": true, ".wav": true,
}

// Stored names are always a uuid plus a vetted extension, so download
// requests can be matched strictly against that shape.
var storedNameRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.[a-z0-9]+$`)

type FileHandler struct {
	dataDir string
}

func NewFileHandler(dataDir string) (*FileHandler, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileHandler{dataDir: dataDir}, nil
}

// POST /api/files — stores an audio attachment and returns the opaque URL
// the client puts into a log's audio_url. The server never interprets the
// audio; it only stores and serves bytes.
func (h *FileHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}
	if file.Size > maxAudioSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedAudioExt[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type"})
		return
	}

	name := uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(h.dataDir, name)); err != nil {
		logger.Error("file.save.failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	logger.Info("file.saved", "uid", c.GetInt("user_id"), "name", name, "size", file.Size)
	c.JSON(http.StatusCreated, gin.H{"url": "/api/files/" + name})
}

// GET /api/files/:name
func (h *FileHandler) Download(c *gin.Context) {
	name := c.Param("name")
	if !storedNameRe.MatchString(name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file name"})
		return
	}
	path := filepath.Join(h.dataDir, name)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}
	c.File(path)
}
