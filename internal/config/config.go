package config

import "github.com/spf13/viper"

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	Telegram struct {
		Token       string
		AdminChatID int64 `mapstructure:"admin_chat_id"`
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Storage struct {
		Driver string // sqlite | postgres
		Path   string // файл sqlite
		DSN    string // postgres
	} `mapstructure:"storage"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Payroll struct {
		MinimumWage float64 `mapstructure:"minimum_wage"`
	} `mapstructure:"payroll"`

	Summary struct {
		Enabled bool
		Cron    string
	} `mapstructure:"summary"`
}

func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", "data/whiplash.db")
	v.SetDefault("payroll.minimum_wage", 30.00)
	v.SetDefault("summary.cron", "0 21 * * *")

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}
