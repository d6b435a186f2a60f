package http

import (
	"context"
	"net/http"
	"strings"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/core/ports"
	"printfloor/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/sourcegraph/conc"
	"golang.org/x/net/websocket"
)

// StreamEvents handles GET /api/v1/ws. Each connection receives the floor
// events plus any owner or printer scopes named in the query string. Frames
// sent by the client are read and discarded; the stream ends when either
// side closes.
func (s *Server) StreamEvents(ctx echo.Context) error {
	topics, err := streamTopics(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	ws := websocket.Server{
		Handshake: func(*websocket.Config, *http.Request) error { return nil },
		Handler: func(conn *websocket.Conn) {
			s.stream(ctx.Request().Context(), conn, topics)
		},
	}
	ws.ServeHTTP(ctx.Response(), ctx.Request())
	return nil
}

func (s *Server) stream(parent context.Context, conn *websocket.Conn, topics []string) {
	sub := s.hub.Subscribe(topics...)
	defer sub.Close()

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	logger := s.logger.With("remote", conn.Request().RemoteAddr, "topics", topics)
	logger.Debug("display connected")

	var wg conc.WaitGroup
	wg.Go(func() {
		defer cancel()
		var discard string
		for {
			if err := websocket.Message.Receive(conn, &discard); err != nil {
				return
			}
		}
	})
	wg.Go(func() {
		defer conn.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-sub.C:
				if !ok {
					return
				}
				if err := websocket.JSON.Send(conn, event); err != nil {
					logger.Debug("send failed", "error", err)
					return
				}
			}
		}
	})

	if r := wg.WaitAndRecover(); r != nil {
		logger.Error("display stream panicked", "panic", r.String())
	}
	logger.Debug("display disconnected")
}

func streamTopics(ctx echo.Context) ([]string, error) {
	topics := []string{ports.FloorTopic}
	params := ctx.QueryParams()

	for _, owner := range params["owner"] {
		if owner = strings.TrimSpace(owner); owner != "" {
			topics = append(topics, ports.OwnerTopic(owner))
		}
	}
	for _, raw := range params["printer"] {
		id, err := kernel.UUIDFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("printer", err)
		}
		topics = append(topics, ports.PrinterTopic(id))
	}
	return topics, nil
}
