package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/miiv/pkg/service"
)

var (
	cfgFile string
	verbose bool
)

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "miiv")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("MIIV")
	viper.AutomaticEnv()

	home, _ := os.UserHomeDir()
	viper.SetDefault("data_dir", filepath.Join(home, ".local", "share", "miiv"))
	viper.SetDefault("scheme_file", "")
	viper.SetDefault("log_level", "warn")

	// A missing config file is fine, the defaults apply.
	_ = viper.ReadInConfig()
}

// Load decodes the merged viper settings into a service config. Paths may
// start with "~/".
func Load() (*service.Config, error) {
	cfg := &service.Config{}
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		expandHomeHook,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := viper.Unmarshal(cfg, hook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Verbose = verbose
	return cfg, nil
}

// expandHomeHook replaces a leading "~" in string settings with the user's
// home directory.
func expandHomeHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.String {
		return data, nil
	}
	s := data.(string)
	if s != "~" && !strings.HasPrefix(s, "~/") {
		return data, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("expand %s: %w", s, err)
	}
	return filepath.Join(home, strings.TrimPrefix(s, "~")), nil
}

func InitService() (*service.Service, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	svc, err := service.New(cfg)
	if err != nil {
		return nil, err
	}

	return svc, nil
}

func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/miiv/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
