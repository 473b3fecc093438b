package internal

import (
	"log"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/haatos/simple-lms/internal/util"
)

var Config *Configuration

type HoursDuration time.Duration

func NewHoursDuration(hours int64) HoursDuration {
	return HoursDuration(time.Duration(hours) * time.Hour)
}

func (hd HoursDuration) MarshalYAML() (any, error) {
	return float64(time.Duration(hd)) / float64(time.Hour), nil
}

func (hd *HoursDuration) UnmarshalYAML(data []byte) error {
	var hours float64
	if err := yaml.Unmarshal(data, &hours); err != nil {
		return err
	}
	*hd = HoursDuration(hours * float64(time.Hour))
	return nil
}

type MinutesDuration time.Duration

func NewMinutesDuration(minutes int64) MinutesDuration {
	return MinutesDuration(time.Duration(minutes) * time.Minute)
}

func (md MinutesDuration) MarshalYAML() (any, error) {
	return float64(time.Duration(md)) / float64(time.Minute), nil
}

func (md *MinutesDuration) UnmarshalYAML(data []byte) error {
	var minutes float64
	if err := yaml.Unmarshal(data, &minutes); err != nil {
		return err
	}
	*md = MinutesDuration(minutes * float64(time.Minute))
	return nil
}

type Configuration struct {
	SessionExpiresHours HoursDuration   `yaml:"session_expires_hours"`
	ResetCodeTTLMinutes MinutesDuration `yaml:"reset_code_ttl_minutes"`
	BcryptCost          int             `yaml:"bcrypt_cost"`
	MaxUploadMB         int64           `yaml:"max_upload_mb"`
	CORSOrigins         []string        `yaml:"cors_origins"`
	RateLimitPerSecond  float64         `yaml:"rate_limit_per_second"`
	RateLimitBurst      int             `yaml:"rate_limit_burst"`
}

func DefaultConfiguration() *Configuration {
	return &Configuration{
		SessionExpiresHours: NewHoursDuration(30 * 24),
		ResetCodeTTLMinutes: NewMinutesDuration(10),
		BcryptCost:          12,
		MaxUploadMB:         2,
		CORSOrigins:         []string{"http://localhost:3000"},
		RateLimitPerSecond:  20,
		RateLimitBurst:      40,
	}
}

func (c *Configuration) SessionExpires() time.Duration {
	return time.Duration(c.SessionExpiresHours)
}

func (c *Configuration) ResetCodeTTL() time.Duration {
	return time.Duration(c.ResetCodeTTLMinutes)
}

// InitializeConfiguration reads the configuration file at path, writing
// the defaults to it first when it does not exist yet.
func InitializeConfiguration(path string) {
	Config = DefaultConfiguration()

	configFileExists, _ := util.PathExists(path)
	if !configFileExists {
		if err := writeConfiguration(path, Config); err != nil {
			log.Fatal(err)
		}
		return
	}

	configBytes, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	if err := yaml.Unmarshal(configBytes, Config); err != nil {
		log.Fatal(err)
	}
}

func UpdateConfiguration(path string, config *Configuration) error {
	if err := writeConfiguration(path, config); err != nil {
		return err
	}
	Config = config
	return nil
}

func writeConfiguration(path string, config *Configuration) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
