package envelope

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallygate-dev/tallygate/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestEncodeQuery_TrialBalance(t *testing.T) {
	q := model.NewReportQuery(model.ReportTrialBalance,
		model.ParamFromDate, "01-04-2024",
		model.ParamToDate, "31-03-2025")

	out, err := EncodeQuery(q)
	require.NoError(t, err)

	xml := string(out)
	assert.Contains(t, xml, "<TALLYREQUEST>Export Data</TALLYREQUEST>")
	assert.Contains(t, xml, "<REPORTNAME>Trial Balance</REPORTNAME>")
	assert.Contains(t, xml, "<SVFROMDATE>01-04-2024</SVFROMDATE>")
	assert.Contains(t, xml, "<SVTODATE>31-03-2025</SVTODATE>")
}

func TestEncodeQuery_Deterministic(t *testing.T) {
	q := model.NewReportQuery(model.ReportLedgerVouchers,
		model.ParamLedgerName, "Cash",
		model.ParamFromDate, "01-04-2024",
		model.ParamToDate, "30-04-2024")

	first, err := EncodeQuery(q)
	require.NoError(t, err)
	second, err := EncodeQuery(q)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEncodeQuery_FixedVariables(t *testing.T) {
	out, err := EncodeQuery(model.NewReportQuery(model.ReportAllLedgers))
	require.NoError(t, err)
	assert.Contains(t, string(out), "<ACCOUNTTYPE>All Ledger Masters</ACCOUNTTYPE>")

	out, err = EncodeQuery(model.NewReportQuery(model.ReportGroups))
	require.NoError(t, err)
	assert.Contains(t, string(out), "<ACCOUNTTYPE>All Groups</ACCOUNTTYPE>")
}

func TestEncodeQuery_DropsUnknownParams(t *testing.T) {
	q := model.NewReportQuery(model.ReportDayBook,
		model.ParamFromDate, "01-04-2024",
		model.ParamToDate, "01-04-2024",
		"bogus", "value")

	out, err := EncodeQuery(q)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "bogus")
	assert.NotContains(t, string(out), "value")
}

func TestEncodeQuery_UnknownKind(t *testing.T) {
	_, err := EncodeQuery(model.ReportQuery{Kind: "Nonsense"})
	assert.Error(t, err)
}

func TestEncodeLedgerCreate_EscapesFields(t *testing.T) {
	out, err := EncodeLedgerCreate(model.CreateLedger{
		Name:           `R&D <Lab> "West"`,
		Group:          "Indirect Expenses",
		OpeningBalance: dec("1000"),
	})
	require.NoError(t, err)

	xml := string(out)
	assert.Contains(t, xml, "R&amp;D &lt;Lab&gt;")
	assert.NotContains(t, xml, "<Lab>")
	assert.Contains(t, xml, "<PARENT>Indirect Expenses</PARENT>")
	assert.Contains(t, xml, "<OPENINGBALANCE>1000.00</OPENINGBALANCE>")
	assert.Contains(t, xml, "<TALLYREQUEST>Import Data</TALLYREQUEST>")
	assert.Contains(t, xml, `ACTION="Create"`)
}

func TestEncodeVoucherCreate_Sales(t *testing.T) {
	out, err := EncodeVoucherCreate(model.CreateVoucher{
		Kind:      model.VoucherSales,
		Date:      "15-05-2024",
		Party:     "ABC Corp",
		Narration: "Widgets",
		Amount:    dec("5000"),
	})
	require.NoError(t, err)

	xml := string(out)
	assert.Contains(t, xml, `VCHTYPE="Sales"`)
	assert.Contains(t, xml, "<PARTYLEDGERNAME>ABC Corp</PARTYLEDGERNAME>")
	// Party side is deemed positive, contra side carries the negated amount.
	partyIdx := strings.Index(xml, "<LEDGERNAME>ABC Corp</LEDGERNAME>")
	salesIdx := strings.Index(xml, "<LEDGERNAME>Sales</LEDGERNAME>")
	require.Greater(t, partyIdx, 0)
	require.Greater(t, salesIdx, partyIdx)
	assert.Contains(t, xml, "<AMOUNT>5000.00</AMOUNT>")
	assert.Contains(t, xml, "<AMOUNT>-5000.00</AMOUNT>")
	assert.Contains(t, xml, "<ISDEEMEDPOSITIVE>Yes</ISDEEMEDPOSITIVE>")
	assert.Contains(t, xml, "<ISDEEMEDPOSITIVE>No</ISDEEMEDPOSITIVE>")
}

func TestEncodeVoucherCreate_PurchaseSwapsSides(t *testing.T) {
	out, err := EncodeVoucherCreate(model.CreateVoucher{
		Kind:   model.VoucherPurchase,
		Date:   "15-05-2024",
		Party:  "Supplier Ltd",
		Amount: dec("750"),
	})
	require.NoError(t, err)

	xml := string(out)
	purchaseIdx := strings.Index(xml, "<LEDGERNAME>Purchase</LEDGERNAME>")
	partyIdx := strings.Index(xml, "<LEDGERNAME>Supplier Ltd</LEDGERNAME>")
	require.Greater(t, purchaseIdx, 0)
	assert.Greater(t, partyIdx, purchaseIdx)
}

func TestEncodeVoucherCreate_PaymentDefaultsToCash(t *testing.T) {
	out, err := EncodeVoucherCreate(model.CreateVoucher{
		Kind:   model.VoucherPayment,
		Date:   "15-05-2024",
		Party:  "Vendor",
		Amount: dec("100"),
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "<LEDGERNAME>Cash</LEDGERNAME>")
}

func TestEncodeVoucherCreate_JournalRequiresBothSides(t *testing.T) {
	_, err := EncodeVoucherCreate(model.CreateVoucher{
		Kind:        model.VoucherJournal,
		Date:        "15-05-2024",
		Amount:      dec("100"),
		DebitLedger: "Rent",
	})
	assert.Error(t, err)

	out, err := EncodeVoucherCreate(model.CreateVoucher{
		Kind:         model.VoucherJournal,
		Date:         "15-05-2024",
		Amount:       dec("100"),
		DebitLedger:  "Rent",
		CreditLedger: "Cash",
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "<LEDGERNAME>Rent</LEDGERNAME>")
	assert.Contains(t, string(out), "<LEDGERNAME>Cash</LEDGERNAME>")
}

func TestEncodeBackup(t *testing.T) {
	out, err := EncodeBackup(model.BackupRequest{Path: `C:\Backups`})
	require.NoError(t, err)

	xml := string(out)
	assert.Contains(t, xml, "<TALLYREQUEST>Backup</TALLYREQUEST>")
	assert.Contains(t, xml, `<BACKUPPATH>C:\Backups</BACKUPPATH>`)
	assert.Contains(t, xml, "<COMPRESSDATA>Yes</COMPRESSDATA>")
	assert.Contains(t, xml, "<INCLUDEIMAGES>Yes</INCLUDEIMAGES>")
}
