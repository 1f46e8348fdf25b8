// Package commands provides the command-line interface for sensitivectl.
//
// It implements commands for:
//   - key generation
//   - sealing and opening single values
//   - sealing, opening and masking encoded documents
//   - inspecting envelopes
//
// Key material is read through the config package; flags and environment
// variables are bound through cobra and viper.
package commands
