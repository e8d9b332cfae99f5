// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package invctlpath derives file and directory paths from the invctl base directory.
// All layout is defined here so callers don't duplicate path construction logic.
//
// The base directory (--dir flag) contains:
//
//	invctl.yaml                    Config file
//	ledger.yaml                    Primary transaction ledger
//	ledgers/**/*.yaml              Optional additional ledgers merged on load
//	quotes.yaml                    Last known market quotes
//	cache/fx/USD.<LOCAL>.yaml      Cached USD to local currency rate
package invctlpath

import (
	"path/filepath"
	"strings"
)

// ConfigFileName is the well-known config file name within the base directory.
const ConfigFileName = "invctl.yaml"

// LedgerFileName is the primary ledger file name within the base directory.
const LedgerFileName = "ledger.yaml"

// QuotesFileName is the quotes file name within the base directory.
const QuotesFileName = "quotes.yaml"

// LedgersGlob is the doublestar pattern, relative to LedgersDirPath, that
// matches additional ledger files.
const LedgersGlob = "**/*.yaml"

// ConfigFilePath returns the path to the config file within the base directory.
func ConfigFilePath(dirPath string) string {
	return filepath.Join(dirPath, ConfigFileName)
}

// LedgerFilePath returns the path to the primary ledger file.
func LedgerFilePath(dirPath string) string {
	return filepath.Join(dirPath, LedgerFileName)
}

// LedgersDirPath returns the directory holding additional ledger files.
func LedgersDirPath(dirPath string) string {
	return filepath.Join(dirPath, "ledgers")
}

// QuotesFilePath returns the path to the quotes file.
func QuotesFilePath(dirPath string) string {
	return filepath.Join(dirPath, QuotesFileName)
}

// CacheFXDirPath returns the directory for cached FX rate data.
func CacheFXDirPath(dirPath string) string {
	return filepath.Join(dirPath, "cache", "fx")
}

// CacheFXFilePath returns the cached rate file for the given currency pair,
// for example cache/fx/USD.BRL.yaml.
func CacheFXFilePath(dirPath string, base string, quote string) string {
	return filepath.Join(
		CacheFXDirPath(dirPath),
		strings.ToUpper(base)+"."+strings.ToUpper(quote)+".yaml",
	)
}
