// Copyright 2026 Peter Edge
//
// All rights reserved.

package cliio

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()
	format, err := ParseFormat(" JSON ")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, format)
	_, err = ParseFormat("xml")
	require.ErrorContains(t, err, "unknown format")
}

func TestWriteTable(t *testing.T) {
	t.Parallel()
	var buffer bytes.Buffer
	require.NoError(t, WriteTable(&buffer, Table{
		Headers: []string{"TICKER", "VALUE"},
		Rows:    [][]string{{"ABC", "1"}, {"LONGER", "22"}},
		Totals:  []string{"TOTAL", "23"},
	}))
	require.Equal(t, "TICKER  VALUE\nABC     1\nLONGER  22\n        \nTOTAL   23\n", buffer.String())
}

func TestWriteCSVOmitsTotals(t *testing.T) {
	t.Parallel()
	var buffer bytes.Buffer
	require.NoError(t, Write[any](&buffer, FormatCSV, Table{
		Headers: []string{"a", "b"},
		Rows:    [][]string{{"1", "x,y"}},
		Totals:  []string{"t", "t"},
	}, nil))
	require.Equal(t, "a,b\n1,\"x,y\"\n", buffer.String())
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()
	type object struct {
		Name string `json:"name"`
	}
	var buffer bytes.Buffer
	require.NoError(t, Write(&buffer, FormatJSON, Table{}, []object{{Name: "a"}, {Name: "b"}}))
	require.Equal(t, "{\"name\":\"a\"}\n{\"name\":\"b\"}\n", buffer.String())
	require.Error(t, Write(&buffer, Format("xml"), Table{}, []object{}))
}

func TestFormatMoney(t *testing.T) {
	t.Parallel()
	require.Equal(t, "$1,234.50", FormatMoney(1234.5, "usd"))
	require.Equal(t, "+$0.01", FormatSignedMoney(0.005, "USD"))
	require.Equal(t, "$0.00", FormatMoney(math.NaN(), "USD"))
	require.Equal(t, "12.30 QQQ", FormatMoney(12.3, "QQQ"))
}

func TestFormatPercentAndQuantity(t *testing.T) {
	t.Parallel()
	require.Equal(t, "12.35%", FormatPercent(12.345))
	require.Equal(t, "-20.00%", FormatSignedPercent(-20))
	require.Equal(t, "+5.00%", FormatSignedPercent(5))
	require.Equal(t, "0.00%", FormatPercent(math.Inf(1)))
	require.Equal(t, "0.25", FormatQuantity(0.25))
	require.Equal(t, "100", FormatQuantity(100))
}
