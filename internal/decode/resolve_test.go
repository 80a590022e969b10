package decode

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallygate-dev/tallygate/internal/envelope"
	"github.com/tallygate-dev/tallygate/internal/tallyerr"
)

func node(t *testing.T, xml string) *envelope.Node {
	t.Helper()
	n, err := envelope.Decode([]byte(xml))
	require.NoError(t, err)
	return n
}

func TestResolve_FirstCandidateWins(t *testing.T) {
	n := node(t, `<LEDGER><AMOUNT>10</AMOUNT><CLOSINGBALANCE>20</CLOSINGBALANCE></LEDGER>`)
	assert.Equal(t, "10", Resolve(n, []string{"AMOUNT", "CLOSINGBALANCE"}, ""))
	assert.Equal(t, "20", Resolve(n, []string{"TAXABLEVALUE", "CLOSINGBALANCE"}, ""))
}

func TestResolve_SkipsEmptyContent(t *testing.T) {
	n := node(t, `<LEDGER><AMOUNT>  </AMOUNT><CLOSINGBALANCE>20</CLOSINGBALANCE></LEDGER>`)
	assert.Equal(t, "20", Resolve(n, []string{"AMOUNT", "CLOSINGBALANCE"}, ""))
}

func TestResolve_FallsBackToAttribute(t *testing.T) {
	n := node(t, `<LEDGER NAME="Cash"/>`)
	assert.Equal(t, "Cash", Resolve(n, []string{"NAME"}, ""))
}

func TestResolve_DefaultWhenAllAbsent(t *testing.T) {
	n := node(t, `<LEDGER/>`)
	assert.Equal(t, "fallback", Resolve(n, []string{"NAME", "LEDGERNAME"}, "fallback"))
}

func TestResolveDecimal_AbsentIsNotAnError(t *testing.T) {
	n := node(t, `<LEDGER/>`)
	_, present, err := ResolveDecimal(n, []string{"AMOUNT"})
	require.NoError(t, err)
	assert.False(t, present)
}

func TestResolveDecimal_InvalidIsSurfaced(t *testing.T) {
	n := node(t, `<LEDGER><AMOUNT>twelve</AMOUNT></LEDGER>`)
	_, _, err := ResolveDecimal(n, []string{"AMOUNT"})
	require.Error(t, err)

	var invalid *tallyerr.InvalidFieldError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "AMOUNT", invalid.Field)
	assert.Equal(t, "twelve", invalid.Raw)
}

func TestResolveDate_Layouts(t *testing.T) {
	cases := map[string]string{
		"iso":       `<V><DATE>2024-04-01</DATE></V>`,
		"engine":    `<V><DATE>01-04-2024</DATE></V>`,
		"compact":   `<V><DATE>20240401</DATE></V>`,
		"with time": `<V><DATE>2024-04-01 10:30:00</DATE></V>`,
	}
	want := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	for name, xml := range cases {
		t.Run(name, func(t *testing.T) {
			d, present, err := ResolveDate(node(t, xml), []string{"DATE"})
			require.NoError(t, err)
			require.True(t, present)
			assert.True(t, d.Equal(want), "got %s", d)
		})
	}
}

func TestResolveDate_InvalidIsSurfaced(t *testing.T) {
	_, _, err := ResolveDate(node(t, `<V><DATE>yesterday</DATE></V>`), []string{"DATE"})
	var invalid *tallyerr.InvalidFieldError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "yesterday", invalid.Raw)
}
