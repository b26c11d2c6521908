// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run lifecycle (load, validate, build the
// graph, schedule, report), decoupled from any specific entrypoint like a CLI.
package app
