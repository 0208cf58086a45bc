// Package server holds the HTTP server configuration.
//
// The serve command builds the fiber app; this package only defines the
// listen port, the API key and the paths left public.
package server
