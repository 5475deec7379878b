package submit

import (
	"testing"
	"time"

	"github.com/airenas/speechsubmit/internal/pkg/gateway"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper() *viper.Viper {
	c := viper.New()
	initDefaults(c)
	c.Set("gateway.email", "olia@speechlab.sg")
	c.Set("gateway.password", "pass")
	c.Set("job.file", "audio.wav")
	return c
}

func TestNewConfig(t *testing.T) {
	cfg, err := newConfig(newTestViper())

	require.Nil(t, err)
	assert.Equal(t, gateway.DefaultURL, cfg.GatewayURL)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.Equal(t, gateway.Credentials{Email: "olia@speechlab.sg", Password: "pass"}, cfg.Credentials)
	assert.Equal(t, gateway.UploadRequest{FilePath: "audio.wav", Lang: "english", Queue: "dhl"}, cfg.Upload)
	assert.Equal(t, formatJSON, cfg.Output)
}

func TestNewConfig_Overrides(t *testing.T) {
	c := newTestViper()
	c.Set("gateway.url", "http://localhost:8080")
	c.Set("gateway.timeout", "2m")
	c.Set("job.queue", "normal")
	c.Set("output.format", "YAML")

	cfg, err := newConfig(c)

	require.Nil(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.GatewayURL)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.Equal(t, "normal", cfg.Upload.Queue)
	assert.Equal(t, formatYAML, cfg.Output)
}

func TestNewConfig_Fails(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value interface{}
	}{
		{name: "no email", key: "gateway.email", value: ""},
		{name: "wrong email", key: "gateway.email", value: "olia"},
		{name: "no password", key: "gateway.password", value: ""},
		{name: "wrong url", key: "gateway.url", value: "olia"},
		{name: "negative timeout", key: "gateway.timeout", value: "-1s"},
		{name: "no lang", key: "job.lang", value: ""},
		{name: "no queue", key: "job.queue", value: ""},
		{name: "wrong format", key: "output.format", value: "xml"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestViper()
			c.Set(tc.key, tc.value)

			cfg, err := newConfig(c)

			assert.NotNil(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestNewConfig_NoFileIsAllowed(t *testing.T) {
	c := newTestViper()
	c.Set("job.file", "")

	cfg, err := newConfig(c)

	require.Nil(t, err)
	assert.Equal(t, "", cfg.Upload.FilePath)
}
