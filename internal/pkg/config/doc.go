// Package config loads and validates the settings of the key service: the
// HTTP server, the logging backend, the key metadata store and the key
// material vault. Settings come from a YAML file read with viper and every
// section validates itself before use.
package config
