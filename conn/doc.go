// Package conn opens the low level buses used to talk to display controllers.
//
// All buses are provided by periph.io; the host drivers need to be loaded with
// [periph.io/x/host/v3.Init] before anything in this package is used.
package conn
