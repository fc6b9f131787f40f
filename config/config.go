package config

import (
	"errors"
	"fmt"
	"strings"

	"go-atm-engine/common"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Account struct {
		HolderID         string `mapstructure:"holder_id"`
		OpeningBalance   string `mapstructure:"opening_balance" validate:"required"`
		PIN              string `mapstructure:"pin" validate:"required,number"`
		PINLength        int    `mapstructure:"pin_length" validate:"gte=4,lte=12"`
		TransferPasscode string `mapstructure:"transfer_passcode" validate:"required,number,len=4|len=6"`
	} `mapstructure:"account"`
	Security struct {
		BcryptCost int `mapstructure:"bcrypt_cost"`
	} `mapstructure:"security"`
	Terminal struct {
		HistoryLimit   int    `mapstructure:"history_limit" validate:"gte=0"`
		CurrencySymbol string `mapstructure:"currency_symbol"`
	} `mapstructure:"terminal"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format" validate:"oneof=text json"`
	} `mapstructure:"log"`
}

// Flags returns the command line flags understood by LoadConfig.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("atm", pflag.ContinueOnError)
	fs.String("config", ".", "directory containing config.yml")
	fs.String("log-level", "", "log level override (debug, info, warn, error)")
	fs.String("holder-id", "", "card holder id required at login")
	return fs
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("account.holder_id", "")
	v.SetDefault("account.opening_balance", "100000")
	v.SetDefault("account.pin", "2004")
	v.SetDefault("account.pin_length", 4)
	v.SetDefault("account.transfer_passcode", "2004")
	v.SetDefault("security.bcrypt_cost", bcrypt.DefaultCost)
	v.SetDefault("terminal.history_limit", 15)
	v.SetDefault("terminal.currency_symbol", "₹")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// LoadConfig reads config.yml from path, then applies ATM_* environment
// variables and finally any flags that were explicitly set. A missing config
// file is not an error; every key has a default.
func LoadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvPrefix("ATM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if f := flags.Lookup("log-level"); f != nil && f.Changed {
			if err := v.BindPFlag("log.level", f); err != nil {
				return nil, fmt.Errorf("bind log-level flag: %w", err)
			}
		}
		if f := flags.Lookup("holder-id"); f != nil && f.Changed {
			if err := v.BindPFlag("account.holder_id", f); err != nil {
				return nil, fmt.Errorf("bind holder-id flag: %w", err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := common.Validator().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if len(cfg.Account.PIN) != cfg.Account.PINLength {
		return nil, fmt.Errorf("invalid configuration: account.pin must have %d digits", cfg.Account.PINLength)
	}

	return &cfg, nil
}
