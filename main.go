package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-maze/api"
	api_i "github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/beka-birhanu/vinom-maze/api/identity"
	mazeapi "github.com/beka-birhanu/vinom-maze/api/maze"
	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/infrastruture/events"
	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/beka-birhanu/vinom-maze/settings"
	"github.com/gin-gonic/gin"
)

// Global variables for dependencies
var (
	appLogger      *log.Logger
	settingsStore  *settings.Store
	eventHub       *events.Hub
	runner         *service.Runner
	jwtTokenizer   i.Tokenizer
	mazeController api_i.Controller
	router         *api.Router
)

func newLogger(name, color string) *log.Logger {
	return log.New(os.Stdout, fmt.Sprintf("%s[%s]%s ", color, name, config.ColorReset), log.LstdFlags)
}

func logError(format string, v ...interface{}) {
	appLogger.Printf("%s[ERROR]%s %s", config.LogErrorColor, config.LogColorReset, fmt.Sprintf(format, v...))
}

func logInfo(format string, v ...interface{}) {
	appLogger.Printf("%s[INFO]%s %s", config.LogInfoColor, config.LogColorReset, fmt.Sprintf(format, v...))
}

func initSettings() {
	settingsStore = settings.New(settings.Config{
		MaxSpeed:   config.Envs.AnimationMaxExponent,
		Speed:      config.Envs.DefaultAnimationSpeed,
		ExtraGates: config.Envs.DefaultExtraGates,
	})
	logInfo("Settings initialized")
}

func initEventHub() {
	eventHub = events.NewHub(0)
	logInfo("Event hub initialized")
}

func initRunner() {
	options := []service.RunnerOption{
		service.WithLogger(newLogger("RUNNER", config.ColorCyan)),
		service.WithTimeUnit(time.Duration(config.Envs.AnimationTimeUnitMS) * time.Millisecond),
		service.WithMaxSpeedExponent(config.Envs.AnimationMaxExponent),
	}
	if config.Envs.MazeSeed != 0 {
		options = append(options, service.WithSeed(config.Envs.MazeSeed))
	}

	var err error
	runner, err = service.NewRunner(service.RunnerConfig{
		Rows:     config.Envs.MazeRows,
		Cols:     config.Envs.MazeCols,
		Settings: settingsStore,
		Notifier: eventHub,
		Reporter: eventHub,
	}, options...)
	if err != nil {
		logError("Creating algorithm runner: %v", err)
		os.Exit(1)
	}
	logInfo("Algorithm runner initialized for a %dx%d grid", config.Envs.MazeRows, config.Envs.MazeCols)
}

// initJWTTokenizer leaves the control routes open when no secret is configured.
func initJWTTokenizer() {
	if config.Envs.JWTSecret == "" {
		logInfo("JWT_SECRET is empty, control routes are not protected")
		return
	}

	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	operatorToken, err := jwtTokenizer.Generate(
		map[string]interface{}{"role": identity.OperatorRole},
		time.Duration(config.Envs.OperatorTokenTTLMin)*time.Minute,
	)
	if err != nil {
		logError("Minting operator token: %v", err)
		os.Exit(1)
	}
	logInfo("JWT Tokenizer initialized, operator token: %s", operatorToken)
}

func initMazeController() {
	var err error
	mazeController, err = mazeapi.NewController(runner, settingsStore, eventHub)
	if err != nil {
		logError("Creating maze controller: %v", err)
		os.Exit(1)
	}
	logInfo("Maze controller initialized")
}

func initRouter() {
	var authorization gin.HandlerFunc
	if jwtTokenizer != nil {
		authorization = identity.Authoriz(jwtTokenizer)
	}

	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{mazeController},
		AuthorizationMiddleware: authorization,
	})
	logInfo("Router initialized")
}

func main() {
	appLogger = newLogger("APP", config.ColorGreen)
	gin.SetMode(config.Envs.GinMode)

	initSettings()
	initEventHub()
	initRunner()
	defer runner.Cancel()

	initJWTTokenizer()
	initMazeController()
	initRouter()

	// Run HTTP server
	if err := router.Run(); err != nil {
		logError("Starting server: %v", err)
		os.Exit(1)
	}
}
