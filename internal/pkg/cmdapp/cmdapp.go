package cmdapp

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/heirko/go-contrib/logrusHelper"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/spf13/cobra"
)

var (
	configFile = ""
	envFile    = ""
)

// InitApplication initializes the app by reading config file
func InitApplication(rootCommand *cobra.Command) {
	// make environment variable GATEWAY_EMAIL be found by viper with key gateway.email
	Config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Config.AutomaticEnv()
	cobra.OnInitialize(initConfig)
	rootCommand.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is config.yaml)")
	rootCommand.PersistentFlags().StringVarP(&envFile, "env", "", "", "dotenv file with credentials (default is .env)")
}

func initConfig() {
	loadEnv()
	failOnNoFail := false
	if configFile != "" {
		// Use config file from the flag.
		Config.SetConfigFile(configFile)
		failOnNoFail = true
	} else {
		ex, err := os.Executable()
		if err != nil {
			Log.Error("Can't get the app directory:", err)
			panic(1)
		}
		Config.AddConfigPath(filepath.Dir(ex))
		Config.AddConfigPath(".")
		Config.SetConfigName("config")
	}

	if err := Config.ReadInConfig(); err != nil {
		Log.Debug("Can't read config:", err)
		if failOnNoFail {
			Log.Error("Can't read config:", err)
			Log.Error("Exiting the app")
			panic(1)
		}
	}
	initLog()
	Log.Debug("Config loaded from: ", Config.ConfigFileUsed())
}

// loadEnv puts .env values into the process environment, so viper sees them as env vars.
// Already set variables are not overwritten
func loadEnv() {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			Log.Error("Can't load env file:", err)
			panic(1)
		}
		return
	}
	if err := godotenv.Load(); err != nil && !os.IsNotExist(errors.Cause(err)) {
		Log.Warn("Can't load .env:", err)
	}
}

func initLog() {
	initDefaultLogConfig()
	c := logrusHelper.UnmarshalConfiguration(Config.Sub("logger"))
	err := logrusHelper.SetConfig(Log, c)
	if err != nil {
		Log.Error("Can't init log ", err)
	}
}

func initDefaultLogConfig() {
	defaultLogConfig := map[string]interface{}{
		"level":                              "info",
		"formatter.name":                     "text",
		"formatter.options.full_timestamp":   true,
		"formatter.options.timestamp_format": "2006-01-02T15:04:05.000",
	}
	Config.SetDefault("logger", defaultLogConfig)
}

func logPanic() {
	if r := recover(); r != nil {
		Log.Error(r)
		os.Exit(1)
	}
}

//Execute the main command. The command is expected to log its own errors,
//here the failure only sets the exit code
func Execute(cmd *cobra.Command) {
	defer logPanic()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//LogIf logs error if err != nil
func LogIf(err error) {
	if err != nil {
		Log.Error(err)
	}
}

//NewSignalContext returns a context cancelled on system interupts
func NewSignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
