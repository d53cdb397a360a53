package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	MazeRows              int    // Number of rows of every generated maze
	MazeCols              int    // Number of columns of every generated maze
	MazeSeed              int64  // Seed for reproducible mazes, 0 seeds from the clock
	AnimationMaxExponent  int    // K in the delay formula 2^(K-speed)-1; also the "instant" speed
	AnimationTimeUnitMS   int    // Length of one delay unit in milliseconds
	DefaultAnimationSpeed int    // Initial speed of both phases
	DefaultExtraGates     int    // Initial number of extra gate iterations
	HostIP                string // Host IP for the server
	RESTPort              int    // Port for the REST API
	GinMode               string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret             string // Secret key for JWT signing, empty disables authorization
	JWTIssuer             string // Issuer claim for JWTs
	OperatorTokenTTLMin   int    // Lifetime of the operator token minted at start-up
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// defaultConfig holds the values used when neither the config file nor the environment sets them.
func defaultConfig() Config {
	return Config{
		MazeRows:              30,
		MazeCols:              30,
		AnimationMaxExponent:  10,
		AnimationTimeUnitMS:   1,
		DefaultAnimationSpeed: 7,
		DefaultExtraGates:     10,
		HostIP:                "127.0.0.1",
		RESTPort:              8080,
		GinMode:               "release",
		JWTIssuer:             "vinom-maze",
		OperatorTokenTTLMin:   60,
	}
}

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file, then the HCL file named by
// CONFIG_FILE if any. Environment variables win over the file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	d := defaultConfig()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		var err error
		if d, err = loadFile(path, d); err != nil {
			log.Fatalf("[APP] [FATAL] %v", err)
		}
	}

	return Config{
		MazeRows:              getEnvAsIntWithDefault("MAZE_ROWS", d.MazeRows),
		MazeCols:              getEnvAsIntWithDefault("MAZE_COLS", d.MazeCols),
		MazeSeed:              int64(getEnvAsIntWithDefault("MAZE_SEED", int(d.MazeSeed))),
		AnimationMaxExponent:  getEnvAsIntWithDefault("ANIMATION_MAX_EXPONENT", d.AnimationMaxExponent),
		AnimationTimeUnitMS:   getEnvAsIntWithDefault("ANIMATION_TIME_UNIT_MS", d.AnimationTimeUnitMS),
		DefaultAnimationSpeed: getEnvAsIntWithDefault("DEFAULT_ANIMATION_SPEED", d.DefaultAnimationSpeed),
		DefaultExtraGates:     getEnvAsIntWithDefault("DEFAULT_EXTRA_GATES", d.DefaultExtraGates),
		HostIP:                getEnvWithDefault("HOST_IP", d.HostIP),
		RESTPort:              getEnvAsIntWithDefault("REST_PORT", d.RESTPort),
		GinMode:               getEnvWithDefault("GIN_MODE", d.GinMode),
		JWTSecret:             getEnvWithDefault("JWT_SECRET", d.JWTSecret),
		JWTIssuer:             getEnvWithDefault("JWT_ISSUER", d.JWTIssuer),
		OperatorTokenTTLMin:   getEnvAsIntWithDefault("OPERATOR_TOKEN_TTL_MIN", d.OperatorTokenTTLMin),
	}
}

// getEnvAsIntWithDefault retrieves the value of an environment variable as an integer, or the default if it is not set.
// A value that cannot be parsed is fatal.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
