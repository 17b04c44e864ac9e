// Package config resolves the settings used by the clmform command. Values
// come from built-in defaults, an optional YAML file, an optional .env file
// and the environment, in that order.
package config
