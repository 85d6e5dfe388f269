// Package cmd implements the tomat command-line interface.
//
// The root command defaults to serve, which hosts the Shockwave landing
// page and dashboard. A version subcommand prints the build version.
package cmd
