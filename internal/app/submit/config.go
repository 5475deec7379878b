package submit

import (
	"strings"
	"time"

	"github.com/airenas/speechsubmit/internal/pkg/gateway"
	"github.com/airenas/speechsubmit/internal/pkg/utils"
	"github.com/badoux/checkmail"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

//Config keeps all settings of one run
type Config struct {
	GatewayURL  string
	Timeout     time.Duration
	Credentials gateway.Credentials
	Upload      gateway.UploadRequest
	Output      string
}

func initDefaults(c *viper.Viper) {
	c.SetDefault("gateway.url", gateway.DefaultURL)
	c.SetDefault("gateway.timeout", 0)
	c.SetDefault("job.lang", gateway.DefaultLang)
	c.SetDefault("job.queue", gateway.DefaultQueue)
	c.SetDefault("output.format", formatJSON)
}

func newConfig(c *viper.Viper) (*Config, error) {
	res := Config{}
	var err error
	res.GatewayURL, err = utils.ValidateURL(c.GetString("gateway.url"), "gateway.url")
	if err != nil {
		return nil, err
	}
	res.Timeout = c.GetDuration("gateway.timeout")
	if res.Timeout < 0 {
		return nil, errors.Errorf("Wrong gateway.timeout %v", res.Timeout)
	}
	res.Credentials.Email = strings.TrimSpace(c.GetString("gateway.email"))
	res.Credentials.Password = c.GetString("gateway.password")
	if err = validateCredentials(res.Credentials); err != nil {
		return nil, err
	}
	res.Upload.FilePath = c.GetString("job.file")
	res.Upload.Lang = c.GetString("job.lang")
	res.Upload.Queue = c.GetString("job.queue")
	if res.Upload.Lang == "" || res.Upload.Queue == "" {
		return nil, errors.New("No job.lang or job.queue setting provided")
	}
	res.Output = strings.ToLower(c.GetString("output.format"))
	if _, err = newPrinter(res.Output); err != nil {
		return nil, err
	}
	return &res, nil
}

func validateCredentials(cr gateway.Credentials) error {
	if cr.Email == "" {
		return errors.New("No gateway.email setting provided")
	}
	if err := checkmail.ValidateFormat(cr.Email); err != nil {
		return errors.Wrapf(err, "Wrong email '%s'", cr.Email)
	}
	if cr.Password == "" {
		return errors.New("No gateway.password setting provided")
	}
	return nil
}
