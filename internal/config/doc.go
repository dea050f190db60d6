// Package config loads, normalizes, and validates ytsum configuration.
//
// Settings come from an optional TOML file layered over repository defaults.
// Credentials fall back to the process environment and then to a dotenv file
// that is read without mutating the environment, so the resolved values live
// on the returned Config rather than in global state.
package config
