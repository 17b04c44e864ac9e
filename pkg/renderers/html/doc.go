// Package html renders workflow forms as plain HTML using an embedded pongo2
// template. Intro markup is sanitised with bluemonday and an optional go-theme
// selector contributes CSS custom properties.
package html
