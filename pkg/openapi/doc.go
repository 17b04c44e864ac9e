// Package openapi publishes the relay's workflow contract as an OpenAPI 3
// document built with kin-openapi. The FormValues component is derived from
// the active workflow configuration.
package openapi
