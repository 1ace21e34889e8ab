package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	MaxUploadFiles = 10
	MaxUploadSize  = 10 << 20
	UploadsPath    = "/uploads"
	uploadField    = "images"
)

// UploadHandler stores images on local disk and returns the public URLs
// they are served under.
type UploadHandler struct {
	dir     string
	baseURL string
}

func NewUploadHandler(dir, baseURL string) (*UploadHandler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &UploadHandler{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected multipart form"})
		return
	}

	files := form.File[uploadField]
	switch {
	case len(files) == 0:
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files in field " + uploadField})
		return
	case len(files) > MaxUploadFiles:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("at most %d files per upload", MaxUploadFiles)})
		return
	}

	extensions := make([]string, len(files))
	for i, file := range files {
		if file.Size > MaxUploadSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": file.Filename + " exceeds 10 MiB"})
			return
		}
		ext, err := imageExtension(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": file.Filename + ": " + err.Error()})
			return
		}
		extensions[i] = ext
	}

	urls := make([]string, 0, len(files))
	for i, file := range files {
		name := uuid.New().String() + extensions[i]
		if err := c.SaveUploadedFile(file, filepath.Join(h.dir, name)); err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store file"})
			return
		}
		urls = append(urls, h.baseURL+UploadsPath+"/"+name)
	}

	c.JSON(http.StatusCreated, gin.H{"urls": urls})
}

// imageExtension sniffs the file content and rejects anything that is not
// an image, whatever its declared content type.
func imageExtension(file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("unsupported file type %s", mtype.String())
	}
	return mtype.Extension(), nil
}
