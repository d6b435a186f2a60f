package http

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance serving the API, the event stream,
// the health probe and the API browser.
func NewRouter(server *Server, validator echo.MiddlewareFunc, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= 500 {
				level = slog.LevelError
			}
			logger.LogAttrs(context.Background(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	e.GET("/health", server.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")
	api.GET("/ws", server.StreamEvents)

	v := api.Group("", validator)
	v.POST("/orders/:orderId/jobs", server.CreateJobs)

	v.POST("/jobs/status", server.BatchMoveJobStatus)
	v.POST("/jobs/:jobId/status", server.MoveJobStatus)
	v.POST("/jobs/:jobId/printer", server.AssignJobToPrinter)
	v.POST("/jobs/:jobId/qc", server.RecordQCResult)

	v.POST("/printers", server.CreatePrinter)
	v.PUT("/printers/:printerId/status", server.UpdatePrinterStatus)

	v.GET("/gang-sheets", server.ListGangSheets)
	v.POST("/gang-sheets", server.CreateGangSheet)
	v.GET("/gang-sheets/:batchId", server.GetGangSheet)

	v.GET("/kanban", server.GetKanbanBoard)
	v.GET("/stats", server.GetProductionStats)

	v.POST("/pipeline/orders/:orderId/initiate", server.InitiatePipeline)
	v.POST("/pipeline/orders/:orderId/ready", server.MarkOrderReady)
	v.GET("/pipeline/orders/:orderId", server.GetOrderPipelineStatus)
	v.POST("/pipeline/scan/:code", server.ScanAndProcess)
	v.POST("/pipeline/designs/:designId/approve", server.ApproveDesign)
	v.GET("/pipeline/dashboard", server.GetPipelineDashboard)

	return e
}
