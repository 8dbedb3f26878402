package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jo-hoe/gobrush/internal/core"
	"github.com/jo-hoe/gobrush/internal/database"
	"github.com/jo-hoe/gobrush/internal/imageio"
	"github.com/jo-hoe/gobrush/internal/pipeline"
)

// maxUploadBytes bounds the size of an uploaded image
const maxUploadBytes = 32 << 20

type APIService struct {
	coreService *core.CoreService
}

type BrushesResponse struct {
	Available []string `json:"available"`
	Chain     []string `json:"chain"`
}

type RunResponse struct {
	Run    *database.Run            `json:"run"`
	Stages []*database.StageRecord `json:"stages"`
}

type brushRequest struct {
	Format string `query:"format" validate:"omitempty,oneof=jpg jpeg png bmp tif tiff"`
}

func NewAPIService(coreService *core.CoreService) *APIService {
	return &APIService{
		coreService: coreService,
	}
}

func (service *APIService) SetRoutes(e *echo.Echo) {
	e.GET("/probe", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "ok")
	})

	e.GET("/api/v1/brushes", service.brushesHandler)
	e.POST("/api/v1/brush", service.brushHandler)
	e.GET("/api/v1/runs", service.runsHandler)
	e.GET("/api/v1/runs/:id", service.runHandler)
	e.GET("/metrics", echo.WrapHandler(service.coreService.Metrics().Handler()))
}

func (service *APIService) brushesHandler(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, BrushesResponse{
		Available: service.coreService.BrushNames(),
		Chain:     service.coreService.ChainNames(),
	})
}

func (service *APIService) brushHandler(ctx echo.Context) error {
	var req brushRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(ctx, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	format := service.coreService.DefaultFormat()
	if req.Format != "" {
		f, err := imageio.ParseFormat(req.Format)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		format = f
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		slog.Error("brushHandler: failed to get uploaded file",
			"status", http.StatusBadRequest, "error", err)
		return ctx.String(http.StatusBadRequest, "Failed to get uploaded file")
	}

	src, err := file.Open()
	if err != nil {
		slog.Error("brushHandler: failed to open uploaded file",
			"status", http.StatusInternalServerError, "error", err, "filename", file.Filename)
		return ctx.String(http.StatusInternalServerError, "Failed to open uploaded file")
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			slog.Error("brushHandler: failed to close uploaded file reader", "error", cerr, "filename", file.Filename)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		slog.Error("brushHandler: failed to read uploaded file",
			"status", http.StatusInternalServerError, "error", err, "filename", file.Filename)
		return ctx.String(http.StatusInternalServerError, "Failed to read uploaded file")
	}
	if len(data) > maxUploadBytes {
		return ctx.String(http.StatusRequestEntityTooLarge, "Uploaded file is too large")
	}

	out, err := service.coreService.Process(ctx.Request().Context(), data, format)
	if err != nil {
		status := statusFor(err)
		slog.Error("brushHandler: failed to process uploaded image",
			"status", status, "error", err, "filename", file.Filename)
		return ctx.String(status, err.Error())
	}

	return ctx.Blob(http.StatusOK, format.ContentType(), out)
}

// statusFor maps stage errors to HTTP statuses
func statusFor(err error) int {
	var (
		le *pipeline.LoadError
		fe *pipeline.FilterError
	)
	switch {
	case errors.As(err, &le):
		return http.StatusBadRequest
	case errors.As(err, &fe):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (service *APIService) runsHandler(ctx echo.Context) error {
	db := service.coreService.Database()
	if db == nil {
		return ctx.String(http.StatusNotFound, "Run ledger is not configured")
	}

	runs, err := db.GetRuns()
	if err != nil {
		slog.Error("runsHandler: failed to list runs",
			"status", http.StatusInternalServerError, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to list runs")
	}
	if runs == nil {
		runs = []*database.Run{}
	}
	return ctx.JSON(http.StatusOK, runs)
}

func (service *APIService) runHandler(ctx echo.Context) error {
	db := service.coreService.Database()
	if db == nil {
		return ctx.String(http.StatusNotFound, "Run ledger is not configured")
	}

	id := ctx.Param("id")
	run, err := db.GetRun(id)
	if err != nil {
		slog.Warn("runHandler: run not found", "status", http.StatusNotFound, "run_id", id, "error", err)
		return ctx.String(http.StatusNotFound, "Run not found")
	}

	stages, err := db.GetStages(id)
	if err != nil {
		slog.Error("runHandler: failed to list stages",
			"status", http.StatusInternalServerError, "error", err, "run_id", id)
		return ctx.String(http.StatusInternalServerError, "Failed to list stages")
	}
	return ctx.JSON(http.StatusOK, RunResponse{Run: run, Stages: stages})
}
