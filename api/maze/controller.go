// Package mazeapi exposes the algorithm runner over HTTP.
package mazeapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/beka-birhanu/vinom-maze/settings"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var ErrMissingDependency = errors.New("maze controller dependency is nil")

// Controller serves the grid, its events and the run controls.
type Controller struct {
	runner   i.AlgorithmRunner
	settings i.SettingsStore
	events   i.EventSource
	upgrader websocket.Upgrader
}

// NewController initializes a Controller.
func NewController(r i.AlgorithmRunner, s i.SettingsStore, e i.EventSource) (*Controller, error) {
	if r == nil || s == nil || e == nil {
		return nil, ErrMissingDependency
	}
	return &Controller{
		runner:   r,
		settings: s,
		events:   e,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}, nil
}

// RegisterPublic registers public routes.
func (mc *Controller) RegisterPublic(route *gin.RouterGroup) {
	mazeRoutes := route.Group("/maze")
	{
		mazeRoutes.GET("", mc.grid)
		mazeRoutes.GET("/status", mc.status)
		mazeRoutes.GET("/events", mc.stream)
		mazeRoutes.GET("/ws", mc.socket)
	}
	route.GET("/settings", mc.currentSettings)
}

// RegisterProtected registers protected routes.
func (mc *Controller) RegisterProtected(route *gin.RouterGroup) {
	mazeRoutes := route.Group("/maze")
	{
		mazeRoutes.POST("/generate", mc.generate)
		mazeRoutes.POST("/path", mc.findPath)
		mazeRoutes.POST("/cancel", mc.cancel)
		mazeRoutes.POST("/testmap/:number", mc.testMap)
	}
	route.PUT("/settings", mc.updateSettings)
}

// grid returns the current grid as JSON, or as a drawing with ?format=text.
func (mc *Controller) grid(ctx *gin.Context) {
	g := mc.runner.Grid()
	if ctx.Query("format") == "text" {
		ctx.String(http.StatusOK, g.String())
		return
	}
	ctx.JSON(http.StatusOK, g.Snapshot())
}

func (mc *Controller) status(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, mc.runner.Status())
}

// stream forwards published events as server-sent events until the client leaves.
func (mc *Controller) stream(ctx *gin.Context) {
	events, unsubscribe := mc.events.Subscribe()
	defer unsubscribe()

	done := ctx.Request.Context().Done()
	ctx.Stream(func(w io.Writer) bool {
		select {
		case <-done:
			return false
		case ev, ok := <-events:
			if !ok {
				return false
			}
			ctx.SSEvent(string(ev.Kind), ev)
			return true
		}
	})
}

// socket forwards published events as JSON websocket messages. Incoming
// messages are discarded; reading only detects the client going away.
func (mc *Controller) socket(ctx *gin.Context) {
	conn, err := mc.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		return // Upgrade has already replied
	}
	defer conn.Close()

	events, unsubscribe := mc.events.Subscribe()
	defer unsubscribe()

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			return
		case ev, ok := <-events:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		}
	}
}

func (mc *Controller) generate(ctx *gin.Context) {
	id, err := mc.runner.StartGeneration()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusAccepted, &RunResponse{RunID: id})
}

func (mc *Controller) findPath(ctx *gin.Context) {
	id, err := mc.runner.StartPathfinding()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusAccepted, &RunResponse{RunID: id})
}

func (mc *Controller) cancel(ctx *gin.Context) {
	mc.runner.Cancel()
	ctx.Status(http.StatusNoContent)
}

func (mc *Controller) testMap(ctx *gin.Context) {
	number, err := strconv.Atoi(ctx.Param("number"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "test map number must be an integer"})
		return
	}

	if err := mc.runner.ShowTestMap(number); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mc.runner.Grid().Snapshot())
}

func (mc *Controller) currentSettings(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, mc.settingsResponse())
}

// updateSettings validates every field before applying any of them.
func (mc *Controller) updateSettings(ctx *gin.Context) {
	var request SettingsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	maxSpeed := mc.settings.MaxAnimationSpeed()
	for _, speed := range []*int{request.GenerationSpeed, request.PathfindingSpeed} {
		if speed != nil && *speed > maxSpeed {
			respondError(ctx, fmt.Errorf("%w: speed must be between %d and %d", settings.ErrOutOfRange, settings.MinAnimationSpeed, maxSpeed))
			return
		}
	}

	if request.GenerationSpeed != nil {
		if err := mc.settings.SetAnimationSpeed(i.PhaseGeneration, *request.GenerationSpeed); err != nil {
			respondError(ctx, err)
			return
		}
	}
	if request.PathfindingSpeed != nil {
		if err := mc.settings.SetAnimationSpeed(i.PhasePathfinding, *request.PathfindingSpeed); err != nil {
			respondError(ctx, err)
			return
		}
	}
	if request.ExtraGates != nil {
		if err := mc.settings.SetExtraGates(*request.ExtraGates); err != nil {
			respondError(ctx, err)
			return
		}
	}

	ctx.JSON(http.StatusOK, mc.settingsResponse())
}

func (mc *Controller) settingsResponse() *SettingsResponse {
	return &SettingsResponse{
		GenerationSpeed:  mc.settings.AnimationSpeed(i.PhaseGeneration),
		PathfindingSpeed: mc.settings.AnimationSpeed(i.PhasePathfinding),
		ExtraGates:       mc.settings.ExtraGates(),
		MaxSpeed:         mc.settings.MaxAnimationSpeed(),
	}
}

func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMissingEndpoints), errors.Is(err, service.ErrGenerationInProgress):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, maze.ErrInvalidSize),
		errors.Is(err, maze.ErrUnknownTestMap),
		errors.Is(err, settings.ErrOutOfRange),
		errors.Is(err, settings.ErrUnknownPhase):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
	}
}
