package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/alkime/vaultlaunch/internal/editor"
	"github.com/alkime/vaultlaunch/internal/palette"
	"github.com/alkime/vaultlaunch/internal/service"
	"github.com/gin-gonic/gin"
)

type editorResponse struct {
	ID         editor.Editor `json:"id"`
	Label      string        `json:"label"`
	CLI        string        `json:"cli,omitempty"`
	GUIOnly    bool          `json:"gui_only"`
	Default    bool          `json:"default"`
	Enabled    bool          `json:"enabled"`
	Registered bool          `json:"registered"`
}

type launchRequest struct {
	Editor   string `json:"editor"`
	Dir      string `json:"dir"`
	File     string `json:"file"`
	OpenFile *bool  `json:"open_file"`
}

func errorJSON(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) handleEditors(c *gin.Context) {
	current := s.deps.Settings.Get()

	editors := make([]editorResponse, 0, len(editor.All()))
	for _, e := range editor.All() {
		d := e.Descriptor()
		editors = append(editors, editorResponse{
			ID:         e,
			Label:      d.Label,
			CLI:        d.CLI,
			GUIOnly:    d.GUIOnly(),
			Default:    e == current.Editor,
			Enabled:    current.Enabled(e),
			Registered: s.deps.Palette.IsRegistered(e),
		})
	}

	c.JSON(http.StatusOK, gin.H{"editors": editors})
}

func (s *Server) handleLaunch(c *gin.Context) {
	var body launchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}

	req := service.Request{Dir: body.Dir, File: body.File, OpenFile: body.OpenFile}
	if body.Editor != "" {
		e, err := editor.Parse(body.Editor)
		if err != nil {
			errorJSON(c, http.StatusBadRequest, err)
			return
		}
		req.Editor = &e
	}

	s.start(c, req)
}

func (s *Server) handleCommands(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"commands": s.deps.Palette.Commands()})
}

// handleRunCommand runs a registered palette command. The body is optional
// and may carry dir and file like a launch request.
func (s *Server) handleRunCommand(c *gin.Context) {
	e, err := palette.ParseCommandID(c.Param("id"))
	if err != nil || !s.deps.Palette.IsRegistered(e) {
		c.JSON(http.StatusNotFound, gin.H{"error": "command not registered"})
		return
	}

	var body launchRequest
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}

	s.start(c, service.Request{Editor: &e, Dir: body.Dir, File: body.File, OpenFile: body.OpenFile})
}

func (s *Server) handleNotices(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	notices := s.deps.Notices.Recent(limit)
	if notices == nil {
		notices = []service.Notice{}
	}

	c.JSON(http.StatusOK, gin.H{"notices": notices})
}

// start kicks off a launch that outlives the request.
func (s *Server) start(c *gin.Context, req service.Request) {
	if req.Dir == "" {
		req.Dir = s.deps.DefaultDir
	}

	id, _, err := s.deps.Launcher.Start(context.WithoutCancel(c.Request.Context()), req)
	switch {
	case errors.Is(err, service.ErrLaunchInProgress):
		errorJSON(c, http.StatusConflict, err)
	case errors.Is(err, service.ErrInvalidRequest):
		errorJSON(c, http.StatusBadRequest, err)
	case err != nil:
		s.logger.Error("Failed to start launch", "error", err)
		errorJSON(c, http.StatusInternalServerError, err)
	default:
		c.JSON(http.StatusAccepted, gin.H{"id": id})
	}
}
