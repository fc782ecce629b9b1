// Package commands wires the wacheck CLI: configuration, logging, the
// backend client and the controller, and one cobra command per action.
package commands
