// Package middleware holds the HTTP middleware of the admin API: the admin
// gate guarding authenticated routes, trace ID propagation and request logging.
package middleware
