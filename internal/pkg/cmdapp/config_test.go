package cmdapp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "test",
		Long:  `test`,
		Run:   run}
}

func run(cmd *cobra.Command, args []string) {
	Log.Info("Starting submitJob")
}

func TestReadEnvironmentVariable(t *testing.T) {
	t.Setenv("GATEWAY_URL", "olia")
	InitApplication(newRootCmd())

	assert.Equal(t, "olia", Config.GetString("gateway.url"))
}

func TestReadConfig(t *testing.T) {
	initAppFromTempFile(t, "gateway:\n     url: olia\n", "")

	assert.Equal(t, "olia", Config.GetString("gateway.url"))
}

func TestEnvBeatsConfig(t *testing.T) {
	t.Setenv("GATEWAY_URL", "xxxx")
	initAppFromTempFile(t, "gateway:\n     url: olia\n", "")

	assert.Equal(t, "xxxx", Config.GetString("gateway.url"))
}

func TestReadDotEnv(t *testing.T) {
	t.Cleanup(func() { os.Unsetenv("GATEWAY_EMAIL") })
	initAppFromTempFile(t, "gateway:\n     email: olia@olia.lt\n", "GATEWAY_EMAIL=env@olia.lt\n")

	assert.Equal(t, "env@olia.lt", Config.GetString("gateway.email"))
}

func TestDefaultLogger(t *testing.T) {
	initDefaultLevel()
	initAppFromTempFile(t, "", "")

	assert.Equal(t, "info", Log.GetLevel().String())
}

func TestLoggerInitFromConfig(t *testing.T) {
	initDefaultLevel()
	initAppFromTempFile(t, "logger:\n    level: trace\n", "")

	assert.Equal(t, "trace", Log.GetLevel().String())
}

func TestLoggerLevelInitFromEnv(t *testing.T) {
	initDefaultLevel()

	t.Setenv("LOGGER_LEVEL", "trace")
	initAppFromTempFile(t, "logger:\n    level: info\n", "")

	assert.Equal(t, "trace", Log.GetLevel().String())
}

func initAppFromTempFile(t *testing.T, data, envData string) {
	t.Helper()
	dir := t.TempDir()
	cf := filepath.Join(dir, "test.yml")
	require.Nil(t, os.WriteFile(cf, []byte(data), 0644))

	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{})
	InitApplication(rootCmd)
	configFile = cf
	envFile = ""
	if envData != "" {
		envFile = filepath.Join(dir, ".env")
		require.Nil(t, os.WriteFile(envFile, []byte(envData), 0644))
	}
	assert.Nil(t, rootCmd.Execute())
}

func initDefaultLevel() {
	Log.SetLevel(logrus.ErrorLevel)
}
