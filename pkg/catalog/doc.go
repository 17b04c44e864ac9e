// Package catalog holds the product catalogue used by the legacy signup form.
// The default catalogue is embedded as YAML; Load accepts the same document
// shape for custom catalogues.
package catalog
