package api

import (
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"whisperapi/internal/storage"
	"whisperapi/internal/stt"
	"whisperapi/internal/utils"

	"github.com/gin-gonic/gin"
)

// AllowedExtensions is the fixed set of accepted audio file extensions.
var AllowedExtensions = []string{"wav", "mp3", "m4a", "flac", "aac", "ogg", "wma", "webm"}

// Handler serves the transcription API. The engine is constructed once at
// startup and shared read-only by every request; the handler adds no
// synchronization of its own.
type Handler struct {
	engine stt.Engine
	model  string // model label reported by the health endpoint
}

// NewHandler creates a Handler around an initialized engine.
func NewHandler(engine stt.Engine, model string) *Handler {
	return &Handler{engine: engine, model: model}
}

// RegisterRoutes registers all API routes.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/", h.home)
	r.GET("/health", h.healthCheck)
	r.POST("/transcribe", h.transcribeAudio)
}

// home returns static service metadata
func (h *Handler) home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Whisper Transcription API",
		"status":  "running",
		"endpoints": gin.H{
			"/transcribe": "POST - Upload audio file for transcription",
		},
	})
}

// healthCheck returns server health status
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"model":  h.model,
	})
}

// allowedFile reports whether the filename has an extension from the
// allow-list. The comparison is case-insensitive.
func allowedFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) < 2 {
		return false
	}
	ext = ext[1:] // drop the leading dot
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// transcribeAudio handles POST /transcribe: validate the multipart upload,
// stage it as a temp file, run it through the engine, clean up, respond.
func (h *Handler) transcribeAudio(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		// A part named "file" whose filename is empty parses as a plain
		// form value, so distinguish it from a truly absent field.
		if form, ferr := c.MultipartForm(); ferr == nil && form != nil && len(form.Value["file"]) > 0 {
			utils.Error(c, http.StatusBadRequest, "No file selected")
			return
		}
		log.Printf("[Transcribe] No file in request: %v", err)
		utils.Error(c, http.StatusBadRequest, "No file provided")
		return
	}

	if file.Filename == "" {
		utils.Error(c, http.StatusBadRequest, "No file selected")
		return
	}

	if !allowedFile(file.Filename) {
		utils.Error(c, http.StatusBadRequest,
			"File type not supported. Allowed types: "+strings.Join(AllowedExtensions, ", "))
		return
	}

	log.Printf("[Transcribe] Received file: %s, size: %d bytes", file.Filename, file.Size)

	tempPath, err := storage.SaveTemp(file)
	if err != nil {
		log.Printf("[Transcribe] Failed to stage upload: %v", err)
		utils.Error(c, http.StatusInternalServerError, "Request processing failed: "+err.Error())
		return
	}

	log.Printf("[Transcribe] Transcribing file: %s", file.Filename)
	result, err := h.engine.Transcribe(tempPath)

	// The temp artifact never outlives the request, success or failure
	storage.Remove(tempPath)

	if err != nil {
		log.Printf("[Transcribe] Engine error (%s): %v", h.engine.Name(), err)
		utils.Error(c, http.StatusInternalServerError, "Transcription failed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transcription": strings.TrimSpace(result.Text),
		"language":      result.Language,
		"filename":      file.Filename,
		"status":        "success",
	})
}
