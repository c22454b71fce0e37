// Package config loads typed configuration for the diarize tool.
//
// It uses Viper to read an optional YAML file and godotenv to read an
// optional .env file, then binds environment variables carrying the service
// prefix onto the config tree (DIARIZE_PIPELINE_BASE_URL becomes
// pipeline.base_url, and so on). Unprefixed variables are read only through
// WithEnvBinding. Environment values win over file values.
//
// # Usage
//
//	var cfg AppConfig // embeds config.ServiceConfig
//	err := config.LoadConfig("diarize", &cfg, config.WithConfigFile(path))
package config
