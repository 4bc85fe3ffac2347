package configuration

import (
	"errors"
	"os"

	"github.com/markusressel/servo2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath string `json:"dbPath" yaml:"dbPath"`

	Api        ApiConfig        `json:"api" yaml:"api"`
	Statistics StatisticsConfig `json:"statistics" yaml:"statistics"`

	Servos []ServoConfig `json:"servos" yaml:"servos"`
	Motor  *MotorConfig  `json:"motor,omitempty" yaml:"motor,omitempty"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("servo2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/servo2go/")
	}

	viper.SetEnvPrefix("servo2go")
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbPath", "/etc/servo2go/servo2go.db")

	viper.SetDefault("api.enabled", true)
	viper.SetDefault("api.host", "0.0.0.0")
	viper.SetDefault("api.port", 8080)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)
}

// DetectAndReadConfigFile reads the config file found by viper and returns its path.
// When no config file exists, the canonical hardware configuration is used and
// an empty path is returned.
func DetectAndReadConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			ui.Warning("No configuration file found, using canonical servo configuration")
			return ""
		}
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

// LoadConfig decodes the viper state into CurrentConfig and applies defaults.
func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		DutyFormulaHookFunc(),
		AngleLimitHookFunc(),
	)))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
	ApplyDefaults(&CurrentConfig)
}

// ApplyDefaults fills unset fields with the canonical hardware configuration.
func ApplyDefaults(config *Configuration) {
	if len(config.Servos) == 0 {
		config.Servos = []ServoConfig{DefaultServoConfig()}
	}
	for i := range config.Servos {
		applyServoDefaults(&config.Servos[i])
	}
	if config.Motor != nil && config.Motor.Gpio != nil {
		applyGpioMotorDefaults(config.Motor.Gpio)
	}
}
