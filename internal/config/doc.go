// Package config loads server, client and token settings with viper.
//
// Values come from FLASHDECK_-prefixed environment variables, an optional
// config.yaml in the working directory and, for the CLI, command-line
// flags. Every loaded struct is checked with validator tags before use.
package config
