// Package file provides a TOML file implementation of driven.ConfigStore.
//
// Settings live in ~/.lore/config.toml unless another directory is given.
package file
