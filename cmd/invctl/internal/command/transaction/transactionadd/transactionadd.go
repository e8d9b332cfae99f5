// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package transactionadd implements the "transaction add" command.
package transactionadd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/invctl/cmd/invctl/internal/invctlcmd"
	"github.com/bufdev/invctl/internal/invctl/invctlconfig"
	"github.com/bufdev/invctl/internal/invctl/invctlledger"
	"github.com/bufdev/invctl/internal/invctl/invctlpath"
	"github.com/bufdev/invctl/internal/invctl/invctlstore"
	"github.com/spf13/pflag"
)

const (
	tickerFlagName    = "ticker"
	kindFlagName      = "kind"
	quantityFlagName  = "quantity"
	priceFlagName     = "price"
	dateFlagName      = "date"
	nameFlagName      = "name"
	assetTypeFlagName = "asset-type"
	sectorFlagName    = "sector"
	countryFlagName   = "country"
	currencyFlagName  = "currency"
)

// NewCommand returns a new transaction add command.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name,
		Short: "Record a buy or sell transaction in ledger.yaml",
		Long: `Record a buy or sell transaction in ledger.yaml.

The transaction is validated against the full merged ledger before it is
written. Sells that exceed the quantity held on their date are rejected.`,
		Args: appcmd.NoArgs,
		Run: builder.NewRunFunc(
			func(ctx context.Context, container appext.Container) error {
				return run(ctx, container, flags)
			},
		),
		BindFlags: flags.Bind,
	}
}

type flags struct {
	Dir       string
	Ticker    string
	Kind      string
	Quantity  string
	Price     string
	Date      string
	Name      string
	AssetType string
	Sector    string
	Country   string
	Currency  string
}

func newFlags() *flags {
	return &flags{}
}

// Bind registers the flag definitions with the given flag set.
func (f *flags) Bind(flagSet *pflag.FlagSet) {
	invctlcmd.BindDirFlag(flagSet, &f.Dir)
	flagSet.StringVar(&f.Ticker, tickerFlagName, "", "The ticker symbol (required)")
	flagSet.StringVar(&f.Kind, kindFlagName, "buy", "The transaction kind (buy, sell)")
	flagSet.StringVar(&f.Quantity, quantityFlagName, "", "The quantity, as a decimal (required)")
	flagSet.StringVar(&f.Price, priceFlagName, "", "The unit price in the instrument's currency, as a decimal (required)")
	flagSet.StringVar(&f.Date, dateFlagName, "", "The trade date as YYYY-MM-DD (default today)")
	flagSet.StringVar(&f.Name, nameFlagName, "", "The instrument name")
	flagSet.StringVar(&f.AssetType, assetTypeFlagName, "", "The asset type (Equity, Fund, ForeignStock, ForeignFund, ETF, Crypto)")
	flagSet.StringVar(&f.Sector, sectorFlagName, "", "The sector")
	flagSet.StringVar(&f.Country, countryFlagName, "", "The country of listing")
	flagSet.StringVar(&f.Currency, currencyFlagName, "", "The instrument's currency code (default the local currency)")
}

func run(_ context.Context, container appext.Container, flags *flags) error {
	transaction, err := newTransaction(flags)
	if err != nil {
		return err
	}
	if transaction.Currency == "" {
		config, err := invctlconfig.ReadConfig(flags.Dir)
		if err != nil {
			return err
		}
		transaction.Currency = config.LocalCurrency
	}
	if err := invctlledger.ValidateTransaction(transaction); err != nil {
		return appcmd.NewInvalidArgumentError(err.Error())
	}
	// Replay the ticker's history across every ledger so over-sells are caught across files.
	existing, err := invctlcmd.LoadTransactions(container.Logger(), flags.Dir)
	if err != nil {
		return err
	}
	var history []invctlledger.Transaction
	for _, existingTransaction := range existing {
		if existingTransaction.Ticker == transaction.Ticker {
			history = append(history, existingTransaction)
		}
	}
	if err := invctlledger.Validate(append(history, transaction)); err != nil {
		var overSellError *invctlledger.OverSellError
		if errors.As(err, &overSellError) {
			return appcmd.NewInvalidArgumentError(err.Error())
		}
		return fmt.Errorf("existing %s transactions are invalid: %w", transaction.Ticker, err)
	}
	ledgerFilePath := invctlpath.LedgerFilePath(flags.Dir)
	ledger, err := invctlstore.ReadLedger(ledgerFilePath)
	if err != nil {
		return err
	}
	ledger.Transactions = append(ledger.Transactions, transaction)
	if err := ledger.Write(ledgerFilePath); err != nil {
		return err
	}
	_, err = fmt.Fprintf(container.Stdout(), "%s\n", transaction.ID)
	return err
}

func newTransaction(flags *flags) (invctlledger.Transaction, error) {
	if flags.Ticker == "" {
		return invctlledger.Transaction{}, appcmd.NewInvalidArgumentErrorf("--%s is required", tickerFlagName)
	}
	kind, err := invctlledger.ParseKind(flags.Kind)
	if err != nil {
		return invctlledger.Transaction{}, appcmd.NewInvalidArgumentError(err.Error())
	}
	quantity, err := invctlstore.ParseDecimal(flags.Quantity)
	if err != nil {
		return invctlledger.Transaction{}, appcmd.NewInvalidArgumentErrorf("invalid --%s: %v", quantityFlagName, err)
	}
	price, err := invctlstore.ParseDecimal(flags.Price)
	if err != nil {
		return invctlledger.Transaction{}, appcmd.NewInvalidArgumentErrorf("invalid --%s: %v", priceFlagName, err)
	}
	date := time.Now().UTC().Truncate(24 * time.Hour)
	if flags.Date != "" {
		date, err = invctlstore.ParseDate(flags.Date)
		if err != nil {
			return invctlledger.Transaction{}, appcmd.NewInvalidArgumentErrorf("invalid --%s: %v", dateFlagName, err)
		}
	}
	return invctlledger.Transaction{
		ID:        invctlstore.NewTransactionID(),
		Ticker:    invctlledger.NormalizeTicker(flags.Ticker),
		Kind:      kind,
		Quantity:  quantity,
		UnitPrice: price,
		Date:      date,
		Name:      flags.Name,
		AssetType: flags.AssetType,
		Sector:    flags.Sector,
		Country:   flags.Country,
		Currency:  strings.ToUpper(strings.TrimSpace(flags.Currency)),
	}, nil
}
