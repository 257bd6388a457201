// Package config loads service configuration from a YAML file, an optional
// .env file and the process environment using viper and godotenv.
//
// Service configs embed ServiceConfig and implement ApplyDefaults and
// Validate; bootstrap calls both exactly once before anything starts.
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Server server.Config `yaml:"server" mapstructure:"server"`
//	}
//
//	var cfg Config
//	err := config.LoadConfig("healthverse", &cfg,
//	    config.WithEnvBinding("synthesis.elevenlabs.api_key", "ELEVEN_API_KEY"))
package config
