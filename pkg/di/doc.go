// Package di wires the gist dependencies with samber/do.
//
// A Runtime holds the base modules; every Invoke builds a fresh injector,
// applies the base and per-call modules in order, runs the handler and shuts
// the injector down. Commands use RunEWithRuntime, which adds the command's
// context and flag values as extra modules.
package di
