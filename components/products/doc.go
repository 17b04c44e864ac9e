// Package products serves the product catalogue as JSON select options for
// the signup form. Results can be filtered by category and a free-text query
// and are returned in catalogue order.
package products
