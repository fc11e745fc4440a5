package server

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"tourplan/app/config"
	"tourplan/app/service/conversation"
	"tourplan/app/service/session"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
)

const shutdownTimeout = 5 * time.Second

type messageRequest struct {
	Message string `json:"message"`
}

// Server is the thin HTTP shell around the conversation core: it owns
// rendering concerns only (request parsing, session lookup, JSON out).
type Server struct {
	cfg             *config.Config
	app             *fiber.App
	conversationSvc *conversation.Service
	sessionSvc      *session.Service
}

func New(di *do.Injector) (*Server, error) {
	s := &Server{
		cfg:             do.MustInvoke[*config.Config](di),
		conversationSvc: do.MustInvoke[*conversation.Service](di),
		sessionSvc:      do.MustInvoke[*session.Service](di),
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	api := app.Group("/api")
	api.Post("/sessions/:id/messages", s.handleMessage)
	api.Get("/sessions/:id/preferences", s.handlePreferences)
	api.Delete("/sessions/:id", s.handleClear)

	s.app = app

	return s, nil
}

func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()

		if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	slog.Info("Listening", "addr", s.cfg.HTTP.Addr)

	return s.app.Listen(s.cfg.HTTP.Addr)
}

func (s *Server) handleMessage(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	var req messageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	text := strings.TrimSpace(req.Message)
	if text == "" {
		return fiber.NewError(fiber.StatusBadRequest, "message must not be empty")
	}

	history := s.sessionSvc.History(sessionID)
	current := s.sessionSvc.Preferences(sessionID)

	start := time.Now()
	result := s.conversationSvc.HandleTurn(c.UserContext(), text, history, current)

	s.sessionSvc.CommitTurn(sessionID, text, result.AssistantText, result.Preferences)

	slog.Info("Processed turn",
		"session", sessionID,
		"complete", result.IsComplete,
		"duration", time.Since(start),
	)

	return c.JSON(result)
}

func (s *Server) handlePreferences(c *fiber.Ctx) error {
	return c.JSON(s.sessionSvc.Preferences(c.Params("id")))
}

func (s *Server) handleClear(c *fiber.Ctx) error {
	s.sessionSvc.Clear(c.Params("id"))

	return c.SendStatus(fiber.StatusNoContent)
}
