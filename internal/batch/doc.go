// Package batch reads deck criteria in bulk from a plain text file.
package batch
