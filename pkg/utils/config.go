package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Parking  ParkingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type ParkingConfig struct {
	ReservationMinutes int    // default reservation hold before the sweep releases it
	SweepSchedule      string // cron spec for the reservation expiry sweep
	MinBilledHours     int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("RESERVATION_MINUTES", 30)
	viper.SetDefault("SWEEP_SCHEDULE", "@every 1m")
	viper.SetDefault("MIN_BILLED_HOURS", 1)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Parking: ParkingConfig{
			ReservationMinutes: viper.GetInt("RESERVATION_MINUTES"),
			SweepSchedule:      viper.GetString("SWEEP_SCHEDULE"),
			MinBilledHours:     viper.GetInt("MIN_BILLED_HOURS"),
		},
	}

	return config, nil
}
