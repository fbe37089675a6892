// Package archive keeps timestamped copies of the config file before bulk
// changes overwrite it.
package archive
