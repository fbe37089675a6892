// Package store keeps the per-deck selection criteria and the editor path,
// and moves them between memory and the viper config file.
package store
