// Package file stores chime configuration on the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML configuration in ~/.chime/config.toml
package file
