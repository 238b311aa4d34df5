// Package commands defines the govledger CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - validate   Validate a file of {kind, payload} operations
//   - check      Validate a single RFC, CURP or CLABE
//   - moments    Print the moment sequences of the active catalog
//
// # Implementation
//
// The root command reads configuration from the environment (and .env),
// loads the catalog and builds the validation service before any subcommand
// runs, so handlers share one engine, metrics registry and audit trail.
package commands
