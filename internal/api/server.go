package api

import (
	"context"
	stderrors "errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"autoreport/app"
	"autoreport/domain/table"
	"autoreport/internal/config"
	"autoreport/internal/errors"
	"autoreport/internal/storage"

	"github.com/gin-gonic/gin"
)

const (
	uploadField = "file"
	reportName  = "report.pdf"
)

// ReportGenerator runs the report pipeline for one request
type ReportGenerator interface {
	Generate(ctx context.Context, req app.ReportRequest) (*app.ReportResult, error)
}

// Server exposes report generation over HTTP
type Server struct {
	router    *gin.Engine
	generator ReportGenerator
	cfg       config.Config
}

// NewServer creates the HTTP server and registers its routes
func NewServer(cfg config.Config, generator ReportGenerator) *Server {
	gin.SetMode(cfg.Server.GinMode)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.MaxMultipartMemory = int64(cfg.Server.MaxUploadMB) << 20

	s := &Server{
		router:    router,
		generator: generator,
		cfg:       cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.POST("/reports", s.handleCreateReport)
	}
}

// Handler returns the underlying http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("[Server] Listening on http://%s", addr)
	return s.router.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleCreateReport accepts a dataset upload and responds with the generated PDF
func (s *Server) handleCreateReport(c *gin.Context) {
	limit := int64(s.cfg.Server.MaxUploadMB) << 20
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	file, header, err := c.Request.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			log.Printf("[handleCreateReport] FAILED - Upload exceeds %d MB", s.cfg.Server.MaxUploadMB)
			respondError(c, http.StatusRequestEntityTooLarge, errors.InvalidInput(
				fmt.Sprintf("upload exceeds the %dMB limit", s.cfg.Server.MaxUploadMB)))
			return
		}
		log.Printf("[handleCreateReport] FAILED - No file uploaded: %v", err)
		respondError(c, http.StatusBadRequest, errors.InvalidInput("no file uploaded"))
		return
	}
	defer file.Close()

	if header.Size > limit {
		respondError(c, http.StatusRequestEntityTooLarge, errors.InvalidInput(
			fmt.Sprintf("upload exceeds the %dMB limit", s.cfg.Server.MaxUploadMB)))
		return
	}

	scratch, err := storage.NewLocalScratch(s.cfg.Report.ScratchDir)
	if err != nil {
		log.Printf("[handleCreateReport] FAILED - Scratch area: %v", err)
		respondError(c, http.StatusInternalServerError, errors.Wrap(err, "failed to prepare upload area"))
		return
	}
	defer func() {
		if err := scratch.Release(); err != nil {
			log.Printf("[handleCreateReport] Failed to release upload area: %v", err)
		}
	}()

	inputPath, err := scratch.Store(file, header.Filename)
	if err != nil {
		respondError(c, http.StatusInternalServerError, errors.Wrap(err, "failed to store upload"))
		return
	}

	req := app.ReportRequest{
		InputPath:  inputPath,
		Format:     table.Format(strings.TrimSpace(c.PostForm("format"))),
		Title:      strings.TrimSpace(c.PostForm("title")),
		OutputPath: scratch.Path(reportName),
	}
	log.Printf("[handleCreateReport] Generating report for %s (%d bytes)", header.Filename, header.Size)

	result, err := s.generator.Generate(c.Request.Context(), req)
	if err != nil {
		log.Printf("[handleCreateReport] FAILED - %v", err)
		respondError(c, statusFor(err), err)
		return
	}

	c.Header("X-Report-Pages", fmt.Sprint(result.Pages))
	c.FileAttachment(result.OutputPath, attachmentName(header.Filename))
}

// statusFor maps pipeline error codes onto HTTP statuses
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeUnsupportedFormat:
		return http.StatusUnsupportedMediaType
	case errors.CodeParseFailure, errors.CodeInvalidInput, errors.CodeNoDataLoaded:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}

func attachmentName(upload string) string {
	base := upload
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	if dot := strings.LastIndex(base, "."); dot > 0 {
		base = base[:dot]
	}
	if base == "" {
		return reportName
	}
	return base + "_report.pdf"
}
