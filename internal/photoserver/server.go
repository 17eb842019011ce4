package photoserver

import (
	"errors"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// RandomPhotoPath is the endpoint the photo frame polls.
const RandomPhotoPath = "/api/photos/random-photo"

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
}

var errNoPhotos = errors.New("no photos in directory")

// Server serves random photos from a directory. The directory is listed on
// every request so photos can be added or removed while it runs.
type Server struct {
	dir    string
	logger *log.Logger
	pick   func(n int) int
	router *gin.Engine
}

// NewServer creates a photo server for dir.
func NewServer(dir string, logger *log.Logger) *Server {
	s := &Server{
		dir:    dir,
		logger: logger.With("component", "photoserver"),
		pick:   rand.Intn,
	}
	s.initRouter()
	return s
}

// Router returns the HTTP handler.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) initRouter() {
	gin.SetMode(gin.ReleaseMode)
	s.router = gin.New()
	s.router.Use(gin.Recovery())

	api := s.router.Group("/api/photos")
	api.GET("/random-photo", s.handleRandomPhoto)
}

func (s *Server) handleRandomPhoto(c *gin.Context) {
	path, err := s.randomPhoto()
	if errors.Is(err, errNoPhotos) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.logger.Error("list photos", "dir", s.dir, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list photos"})
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Error("read photo", "path", path, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot read photo"})
		return
	}

	s.logger.Info("serving photo", "file", filepath.Base(path), "bytes", len(data), "remote", c.ClientIP())
	c.Data(http.StatusOK, contentTypes[strings.ToLower(filepath.Ext(path))], data)
}

func (s *Server) randomPhoto() (string, error) {
	photos, err := listPhotos(s.dir)
	if err != nil {
		return "", err
	}
	if len(photos) == 0 {
		return "", errNoPhotos
	}
	return photos[s.pick(len(photos))], nil
}

func listPhotos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var photos []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := contentTypes[strings.ToLower(filepath.Ext(e.Name()))]; ok {
			photos = append(photos, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(photos)
	return photos, nil
}
