package server

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/KyleBrandon/mirror-server/config"
	"github.com/KyleBrandon/mirror-server/internal/database"
	"github.com/KyleBrandon/mirror-server/internal/fixture"
	"github.com/KyleBrandon/mirror-server/internal/notifier"
	"github.com/KyleBrandon/mirror-server/pkg/server/bathroom"
	"github.com/KyleBrandon/mirror-server/pkg/server/health"
	"github.com/KyleBrandon/mirror-server/pkg/server/sittings"
	"github.com/KyleBrandon/mirror-server/pkg/server/status"
	"github.com/KyleBrandon/mirror-server/pkg/server/weather"
	"github.com/KyleBrandon/mirror-server/pkg/utils"
	"github.com/joho/godotenv"
)

const (
	DEFAULT_SERVER_PORT          = "8080"
	DEFAULT_CONFIG_FILE_LOCATION = "./config/config.json"
)

// Used by "flag" to read command line argument
var (
	cmdLineFlagMockFixture bool
	cmdLineFlagLogLevel    string
)

type ServerConfig struct {
	mux                *http.ServeMux
	ServerPort         string
	DatabaseURL        string
	UseMockFixture     bool
	LogFileLocation    string
	ConfigFileLocation string
	ApiKey             string
	FixtureToken       string
	WeatherApiKey      string
	NotifierConfig     notifier.Config
	Logger             *slog.Logger
	LoggerLevel        *slog.LevelVar
	LogFile            *os.File

	Settings     config.Config
	Fixture      fixture.Fixture
	Notifier     *notifier.Notifier
	Queries      *database.Queries
	DBConnection *sql.DB
}

// init will read and initialize the global command line variables
func init() {
	flag.BoolVar(&cmdLineFlagMockFixture, "use_mock_fixture", false, "Indicate if we should use a mock light fixture for the server instance.")
	flag.StringVar(&cmdLineFlagLogLevel, "log_level", config.DefaultLogLevel.String(), "The log level to start the server at")
}

// InitializeServer loads the environment and configuration, opens the database
// and registers every route.
func InitializeServer() (*ServerConfig, error) {
	slog.Debug(">>InitializeServer")
	defer slog.Debug("<<InitializeServer")

	sc, err := initializeServerConfig()
	if err != nil {
		return nil, err
	}

	sc.mux = http.NewServeMux()
	sc.registerRoutes()

	return sc, nil
}

func (sc *ServerConfig) registerRoutes() {
	bathroomService := bathroom.NewService(sc.Fixture, sc.Notifier, sc.Logger)
	sittingService := sittings.NewService(sc.Queries, sc.Logger)
	weatherClient := weather.NewClient(sc.weatherConfig(), nil, sc.Logger)

	healthHandler := health.NewHandler(sc.LoggerLevel, sc.Logger)
	healthHandler.RegisterRoutes(sc.mux, sc.ApiKey)

	bathroomHandler := bathroom.NewHandler(bathroomService, sc.ApiKey)
	bathroomHandler.RegisterRoutes(sc.mux)

	sittingHandler := sittings.NewHandler(sittingService, sc.ApiKey)
	sittingHandler.RegisterRoutes(sc.mux)

	weatherHandler := weather.NewHandler(weatherClient)
	weatherHandler.RegisterRoutes(sc.mux)

	statusInterval := time.Duration(sc.Settings.StatusIntervalSeconds) * time.Second
	statusHandler := status.NewHandler(bathroomService, sc.Settings.OriginPatterns, statusInterval)
	statusHandler.RegisterRoutes(sc.mux)

	if mock, ok := sc.Fixture.(*fixture.MockFixture); ok {
		mock.RegisterRoutes(sc.mux)
	}
}

// RunServer will start listening for connections
func (sc *ServerConfig) RunServer() {
	slog.Info(">>runServer")
	defer slog.Info("<<runServer")

	go func() {
		log.Println(http.ListenAndServe("localhost:6060", nil))
	}()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", sc.ServerPort),
		Handler: sc.mux,
	}

	slog.Info("Starting server", "port", sc.ServerPort)
	if err := server.ListenAndServe(); err != nil {
		slog.Error("Server failed", "error", err)
	}
}

// Close releases the database connection and the log file.
func (sc *ServerConfig) Close() {
	if sc.DBConnection != nil {
		sc.DBConnection.Close()
	}

	if sc.LogFile != nil && sc.LogFile != os.Stderr {
		sc.LogFile.Close()
	}
}

func initializeServerConfig() (*ServerConfig, error) {
	slog.Info(">>initalizeServerConfig")
	defer slog.Info("<<initalizeServerConfig")

	sc := &ServerConfig{}

	// MUST BE FIRST
	if err := sc.readEnvironmentVariables(); err != nil {
		return nil, err
	}

	if err := sc.configureLogger(); err != nil {
		return nil, err
	}

	settings, err := config.LoadConfigSettings(sc.ConfigFileLocation)
	if err != nil {
		slog.Error("failed to load config file", "error", err)
		return nil, err
	}
	sc.Settings = settings

	sc.Fixture = fixture.NewFixture(settings.Fixture, sc.FixtureToken, sc.UseMockFixture)

	sc.Notifier, err = notifier.NewFromConfig(sc.NotifierConfig)
	if err != nil {
		slog.Error("failed to initialize the notifier", "error", err)
		return nil, err
	}

	if err := sc.openDatabase(); err != nil {
		return nil, err
	}

	return sc, nil
}

func (sc *ServerConfig) readEnvironmentVariables() error {
	slog.Info(">>loadConfiguration")
	defer slog.Info("<<loadConfiguration")

	// load the environment
	err := godotenv.Load()
	if err != nil {
		slog.Warn("could not load .env file", "error", err)
	}

	sc.DatabaseURL = os.Getenv("DATABASE_URL")
	if len(sc.DatabaseURL) == 0 {
		slog.Error("no database connection string is configured")
		return fmt.Errorf("DATABASE_URL is not set")
	}

	sc.ServerPort = os.Getenv("PORT")
	if len(sc.ServerPort) == 0 {
		sc.ServerPort = DEFAULT_SERVER_PORT
	}

	sc.LogFileLocation = os.Getenv("LOG_FILE_LOCATION")

	sc.ConfigFileLocation = os.Getenv("CONFIG_FILE_LOCATION")
	if len(sc.ConfigFileLocation) == 0 {
		sc.ConfigFileLocation = DEFAULT_CONFIG_FILE_LOCATION
	}

	sc.ApiKey = os.Getenv("API_KEY")
	if len(sc.ApiKey) == 0 {
		slog.Warn("API_KEY is not set, mutating routes are not protected")
	}

	sc.FixtureToken = os.Getenv("LIFX_TOKEN")
	sc.WeatherApiKey = os.Getenv("DARKSKY_API_KEY")

	chatIDs, err := notifier.ParseChatIDs(os.Getenv("TELEGRAM_CHAT_IDS"))
	if err != nil {
		slog.Error("failed to parse TELEGRAM_CHAT_IDS", "error", err)
		return err
	}

	sc.NotifierConfig = notifier.Config{
		TelegramToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatIDs:  chatIDs,
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromPhone:  os.Getenv("TWILIO_FROM_PHONE_NO"),
		TwilioToPhone:    os.Getenv("TWILIO_TO_PHONE_NO"),
	}

	// mock fixture flag is a command line flag for debugging
	sc.UseMockFixture = cmdLineFlagMockFixture

	return nil
}

// configureLogger will initialize the slog to stderr and save the log level so it can be set via API.
func (sc *ServerConfig) configureLogger() error {
	slog.Info(">>configureLogger")
	defer slog.Info("<<configureLogger")

	// create a variable to store the current log level
	currentLevel := new(slog.LevelVar)

	// parse the log level from any passed in command line flag
	level, err := utils.ParseLogLevel(cmdLineFlagLogLevel)
	if err != nil {
		slog.Error("Failed to parse the log level, setting to DefaultLogLevel", "error", err, "log_level", cmdLineFlagLogLevel)
		level = config.DefaultLogLevel
	}

	currentLevel.Set(level)

	// by default we will write to stderr
	logFile := os.Stderr
	if len(sc.LogFileLocation) != 0 {
		slog.Info("Save to log file", "file", sc.LogFileLocation)
		logFile, err = os.OpenFile(sc.LogFileLocation, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			slog.Error("Failed to open log file", "error", err)
			return err
		}
	}

	fileHandler := slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: currentLevel})

	logger := slog.New(fileHandler)

	slog.SetDefault(logger)

	sc.Logger = logger
	sc.LoggerLevel = currentLevel
	sc.LogFile = logFile

	return nil
}

func (sc *ServerConfig) openDatabase() error {
	db, err := sql.Open("postgres", sc.DatabaseURL)
	if err != nil {
		slog.Error("failed to open database connection", "error", err)
		return err
	}

	sc.DBConnection = db
	sc.Queries = database.New(db)

	return nil
}

func (sc *ServerConfig) weatherConfig() weather.Config {
	wc := sc.Settings.Weather
	wc.APIKey = sc.WeatherApiKey

	return wc
}
