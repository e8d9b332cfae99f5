// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package invctlcmd provides shared wiring for invctl commands that need the
// valued portfolio (reading config, ledgers, quotes, and the FX rate).
package invctlcmd

import (
	"fmt"
	"log/slog"

	"buf.build/go/app/appext"
	"github.com/bufdev/invctl/internal/invctl/invctlconfig"
	"github.com/bufdev/invctl/internal/invctl/invctlholdings"
	"github.com/bufdev/invctl/internal/invctl/invctlledger"
	"github.com/bufdev/invctl/internal/invctl/invctlpath"
	"github.com/bufdev/invctl/internal/invctl/invctlstore"
	"github.com/bufdev/invctl/internal/invctl/invctlvaluation"
	"github.com/bufdev/invctl/internal/pkg/cliio"
	"github.com/spf13/pflag"
)

const (
	// DirFlagName is the flag name for the invctl base directory.
	DirFlagName = "dir"
	// FormatFlagName is the flag name for the output format.
	FormatFlagName = "format"
)

// BindDirFlag binds the --dir flag.
func BindDirFlag(flagSet *pflag.FlagSet, dir *string) {
	flagSet.StringVar(dir, DirFlagName, ".", "The invctl directory containing invctl.yaml")
}

// BindFormatFlag binds the --format flag.
func BindFormatFlag(flagSet *pflag.FlagSet, format *string) {
	flagSet.StringVar(format, FormatFlagName, string(cliio.FormatTable), "Output format (table, csv, json)")
}

// Snapshot is the valued portfolio at a point in time.
type Snapshot struct {
	// Config is the validated configuration.
	Config *invctlconfig.Config
	// Transactions are the merged transactions in chronological order.
	Transactions []invctlledger.Transaction
	// Result is the projection of the transactions.
	Result *invctlholdings.Result
	// Holdings are the open holdings with overrides and quotes applied, sorted by ticker.
	Holdings []invctlholdings.Holding
	// Quotes are the quotes keyed by normalized ticker.
	Quotes map[string]invctlvaluation.Quote
	// FXRate is the number of local currency units per 1 USD.
	FXRate float64
	// Valued are the valued open holdings, sorted by ticker.
	Valued []invctlvaluation.ValuedHolding
}

// LoadPortfolio reads the configuration, ledgers, quotes, and FX rate from the
// base directory and runs the projection and valuation pipeline.
//
// Data-quality conditions are logged as warnings and never fail the load.
func LoadPortfolio(container appext.Container, dirPath string) (*Snapshot, error) {
	config, err := invctlconfig.ReadConfig(dirPath)
	if err != nil {
		return nil, err
	}
	logger := container.Logger()
	transactions, err := LoadTransactions(logger, dirPath)
	if err != nil {
		return nil, err
	}
	result := invctlholdings.Project(transactions)
	for _, overSell := range result.OverSells {
		logger.Warn("sell exceeds held quantity, position clamped to zero",
			"transaction_id", overSell.TransactionID,
			"ticker", overSell.Ticker,
			"held", cliio.FormatQuantity(overSell.Held),
			"sold", cliio.FormatQuantity(overSell.Sold),
		)
	}
	quotes, err := invctlstore.ReadQuotes(invctlpath.QuotesFilePath(dirPath))
	if err != nil {
		return nil, err
	}
	logParseWarnings(logger, quotes.ParseWarnings)
	holdings := invctlholdings.ApplyOverrides(result.Portfolio(), config.SymbolOverrides)
	fxRate, err := resolveFXRate(logger, config, holdings)
	if err != nil {
		return nil, err
	}
	for _, holding := range holdings {
		quote, ok := quotes.Quotes[holding.Ticker]
		switch {
		case !ok:
			logger.Warn("no quote, using last transaction price",
				"ticker", holding.Ticker,
				"price", cliio.FormatQuantity(holding.CurrentPrice),
			)
		case quote.IsMock:
			logger.Warn("quote is synthesized", "ticker", holding.Ticker)
		}
	}
	holdings = invctlvaluation.ApplyQuotes(holdings, quotes.Quotes)
	return &Snapshot{
		Config:       config,
		Transactions: transactions,
		Result:       result,
		Holdings:     holdings,
		Quotes:       quotes.Quotes,
		FXRate:       fxRate,
		Valued:       invctlvaluation.ValuateAll(holdings, quotes.Quotes, fxRate),
	}, nil
}

// LoadTransactions reads and merges every ledger file in the base directory and
// returns the transactions in chronological order.
func LoadTransactions(logger *slog.Logger, dirPath string) ([]invctlledger.Transaction, error) {
	ledger, err := invctlstore.MergeLedgers(
		invctlpath.LedgerFilePath(dirPath),
		invctlpath.LedgersDirPath(dirPath),
		invctlpath.LedgersGlob,
	)
	if err != nil {
		return nil, err
	}
	logParseWarnings(logger, ledger.ParseWarnings)
	for _, id := range ledger.DuplicateIDs {
		logger.Warn("duplicate transaction id, keeping first occurrence", "transaction_id", id)
	}
	return invctlledger.Normalize(ledger.Transactions), nil
}

// *** PRIVATE ***

// resolveFXRate returns the USD rate from the cache, falling back to the
// configured rate. A missing rate is only an error if a USD holding needs it.
func resolveFXRate(logger *slog.Logger, config *invctlconfig.Config, holdings []invctlholdings.Holding) (float64, error) {
	if invctlledger.IsUSD(config.LocalCurrency) {
		return 1, nil
	}
	cached, err := invctlstore.ReadFXRate(
		invctlpath.CacheFXFilePath(config.DirPath, invctlledger.CurrencyUSD, config.LocalCurrency),
	)
	if err != nil {
		return 0, err
	}
	if cached != nil {
		logger.Debug("using cached fx rate",
			"pair", invctlledger.CurrencyUSD+"."+config.LocalCurrency,
			"rate", cliio.FormatQuantity(cached.Rate),
			"date", cached.Date.Format("2006-01-02"),
		)
		return cached.Rate, nil
	}
	if config.FXRate > 0 {
		return config.FXRate, nil
	}
	for _, holding := range holdings {
		if invctlledger.IsUSD(holding.Currency) {
			return 0, fmt.Errorf(
				"no USD to %s rate available for %s, run \"invctl fx fetch\" or set fx_rate in %s",
				config.LocalCurrency,
				holding.Ticker,
				invctlpath.ConfigFileName,
			)
		}
	}
	return 1, nil
}

func logParseWarnings(logger *slog.Logger, parseWarnings []invctlstore.ParseWarning) {
	for _, parseWarning := range parseWarnings {
		logger.Warn("unparseable value coerced to zero",
			"file", parseWarning.FilePath,
			"key", parseWarning.Key,
			"field", parseWarning.Field,
			"value", parseWarning.Value,
			"error", parseWarning.Err,
		)
	}
}
