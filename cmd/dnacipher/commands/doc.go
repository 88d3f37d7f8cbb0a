// Package commands defines the dnacipher CLI.
//
// Commands
//
//   - encrypt      Encrypt an image into a PNG and print the key
//   - decrypt      Decrypt a PNG produced by encrypt
//   - analyze      Print entropy, and NPCR/UACI/PSNR against a reference image
//   - keygen       Print a key for the given round counts and coefficient
//   - config init  Write the default settings as a TOML file
//
// # Flags
//
// --verbose and --debug raise the log level to debug and trace and disable
// the spinner so log lines are not overwritten. --config points at a TOML
// file whose defaults (round counts, coefficient, seed mode, parallelism)
// apply to every command.
package commands
