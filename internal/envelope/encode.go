package envelope

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/tallygate-dev/tallygate/internal/model"
)

// TALLYREQUEST values selecting the operation family.
const (
	requestExport = "Export Data"
	requestImport = "Import Data"
	requestBackup = "Backup"
)

// reportSpec is the per-kind encoding table: the engine-side report name,
// variables with fixed values, and the ordered parameter-to-variable
// mapping. This table is the adapter's authoritative knowledge of the
// export dialect; keep it here and nowhere else.
type reportSpec struct {
	name   string
	fixed  [][2]string // variable name, value
	params [][2]string // query parameter key, variable name
}

var dateRange = [][2]string{
	{model.ParamFromDate, "SVFROMDATE"},
	{model.ParamToDate, "SVTODATE"},
}

var reportSpecs = map[model.ReportKind]reportSpec{
	model.ReportDayBook:        {name: "DayBook", params: dateRange},
	model.ReportLedgerVouchers: {name: "Ledger Vouchers", params: append([][2]string{{model.ParamLedgerName, "LEDGERNAME"}}, dateRange...)},
	model.ReportAllLedgers: {
		name:  "List of Accounts",
		fixed: [][2]string{{"ACCOUNTTYPE", "All Ledger Masters"}},
	},
	model.ReportGroups: {
		name:  "List of Accounts",
		fixed: [][2]string{{"ACCOUNTTYPE", "All Groups"}},
	},
	model.ReportCompanyInfo:        {name: "List of Companies"},
	model.ReportStockItems:         {name: "List of Stock Items"},
	model.ReportVoucherTypes:       {name: "List of Voucher Types"},
	model.ReportTrialBalance:       {name: "Trial Balance", params: dateRange},
	model.ReportProfitLoss:         {name: "Profit and Loss A/c", params: dateRange},
	model.ReportBalanceSheet:       {name: "Balance Sheet", params: dateRange},
	model.ReportCashFlow:           {name: "Cash Flow", params: dateRange},
	model.ReportStockSummary:       {name: "Stock Summary", params: dateRange},
	model.ReportReceivables:        {name: "Receivables Outstanding", params: dateRange},
	model.ReportPayables:           {name: "Payables Outstanding", params: dateRange},
	model.ReportGstSummary:         {name: "GST Returns Summary", params: dateRange},
	model.ReportBankReconciliation: {name: "Bank Reconciliation", params: append([][2]string{{model.ParamLedgerName, "LEDGERNAME"}}, dateRange...)},
	model.ReportAgeAnalysis:        {name: "Age Analysis", params: append([][2]string{{model.ParamLedgerName, "LEDGERNAME"}}, dateRange...)},
	model.ReportBudgetVsActual:     {name: "Budget vs Actual", params: dateRange},
	model.ReportAuditTrail:         {name: "Audit Trail", params: dateRange},
	model.ReportVoucherDetails: {
		name: "Voucher Register",
		params: [][2]string{
			{model.ParamVoucherNumber, "VOUCHERNUMBER"},
			{model.ParamVoucherType, "VOUCHERTYPENAME"},
		},
	},
}

// EncodeQuery serializes a report query. Output is deterministic: variables
// appear in the order the encoding table declares, so equal queries yield
// byte-identical documents. Parameters the kind's table does not name are
// dropped silently.
func EncodeQuery(q model.ReportQuery) ([]byte, error) {
	spec, ok := reportSpecs[q.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown report kind %q", q.Kind)
	}

	doc, body := newEnvelope(requestExport)
	desc := body.CreateElement("EXPORTDATA").CreateElement("REQUESTDESC")
	desc.CreateElement("REPORTNAME").SetText(spec.name)

	vars := desc.CreateElement("STATICVARIABLES")
	for _, fv := range spec.fixed {
		vars.CreateElement(fv[0]).SetText(fv[1])
	}
	for _, pv := range spec.params {
		if v, ok := q.Params[pv[0]]; ok && v != "" {
			vars.CreateElement(pv[1]).SetText(v)
		}
	}

	return serialize(doc)
}

// EncodeLedgerCreate serializes a ledger creation command.
func EncodeLedgerCreate(c model.CreateLedger) ([]byte, error) {
	doc, msg := newImport("All Masters")
	ledger := msg.CreateElement("LEDGER")
	ledger.CreateAttr("ACTION", "Create")
	ledger.CreateElement("NAME").SetText(c.Name)
	ledger.CreateElement("PARENT").SetText(c.Group)
	ledger.CreateElement("OPENINGBALANCE").SetText(c.OpeningBalance.StringFixed(2))
	return serialize(doc)
}

// EncodeStockItemCreate serializes a stock item creation command.
func EncodeStockItemCreate(c model.CreateStockItem) ([]byte, error) {
	doc, msg := newImport("All Masters")
	item := msg.CreateElement("STOCKITEM")
	item.CreateAttr("ACTION", "Create")
	item.CreateElement("NAME").SetText(c.Name)
	item.CreateElement("BASEUNITS").SetText(c.Unit)
	item.CreateElement("OPENINGRATE").SetText(c.Rate.StringFixed(2))
	return serialize(doc)
}

// EncodeVoucherCreate serializes a voucher creation command as two balanced
// ledger entries. The deemed-positive side and the contra ledger depend on
// the voucher kind; see model.CreateVoucher.
func EncodeVoucherCreate(c model.CreateVoucher) ([]byte, error) {
	debitLedger, creditLedger, err := voucherSides(c)
	if err != nil {
		return nil, err
	}

	doc, msg := newImport("Vouchers")
	voucher := msg.CreateElement("VOUCHER")
	voucher.CreateAttr("VCHTYPE", string(c.Kind))
	voucher.CreateAttr("ACTION", "Create")
	voucher.CreateElement("DATE").SetText(c.Date)
	voucher.CreateElement("VOUCHERTYPENAME").SetText(string(c.Kind))
	if c.Party != "" {
		voucher.CreateElement("PARTYLEDGERNAME").SetText(c.Party)
	}
	if c.Narration != "" {
		voucher.CreateElement("NARRATION").SetText(c.Narration)
	}

	addEntry(voucher, debitLedger, c.Amount, true)
	addEntry(voucher, creditLedger, c.Amount.Neg(), false)

	return serialize(doc)
}

// voucherSides returns the deemed-positive ledger and the contra ledger for
// the command's kind.
func voucherSides(c model.CreateVoucher) (debit, credit string, err error) {
	method := c.Method
	if method == "" {
		method = "Cash"
	}
	switch c.Kind {
	case model.VoucherSales:
		return c.Party, "Sales", nil
	case model.VoucherPurchase:
		return "Purchase", c.Party, nil
	case model.VoucherPayment:
		return c.Party, method, nil
	case model.VoucherReceipt:
		return method, c.Party, nil
	case model.VoucherJournal:
		if c.DebitLedger == "" || c.CreditLedger == "" {
			return "", "", fmt.Errorf("journal voucher requires debit and credit ledgers")
		}
		return c.DebitLedger, c.CreditLedger, nil
	default:
		return "", "", fmt.Errorf("unknown voucher kind %q", c.Kind)
	}
}

func addEntry(voucher *etree.Element, ledger string, amount decimal.Decimal, deemedPositive bool) {
	entry := voucher.CreateElement("ALLLEDGERENTRIES.LIST")
	entry.CreateElement("LEDGERNAME").SetText(ledger)
	if deemedPositive {
		entry.CreateElement("ISDEEMEDPOSITIVE").SetText("Yes")
	} else {
		entry.CreateElement("ISDEEMEDPOSITIVE").SetText("No")
	}
	entry.CreateElement("AMOUNT").SetText(amount.StringFixed(2))
}

// EncodeBackup serializes a company backup request.
func EncodeBackup(r model.BackupRequest) ([]byte, error) {
	doc, body := newEnvelope(requestBackup)
	desc := body.CreateElement("BACKUPDATA").CreateElement("REQUESTDESC")
	desc.CreateElement("BACKUPPATH").SetText(r.Path)
	desc.CreateElement("COMPRESSDATA").SetText("Yes")
	desc.CreateElement("INCLUDEIMAGES").SetText("Yes")
	return serialize(doc)
}

func newEnvelope(request string) (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	env := doc.CreateElement("ENVELOPE")
	env.CreateElement("HEADER").CreateElement("TALLYREQUEST").SetText(request)
	return doc, env.CreateElement("BODY")
}

func newImport(reportName string) (*etree.Document, *etree.Element) {
	doc, body := newEnvelope(requestImport)
	importData := body.CreateElement("IMPORTDATA")
	importData.CreateElement("REQUESTDESC").CreateElement("REPORTNAME").SetText(reportName)
	msg := importData.CreateElement("REQUESTDATA").CreateElement("TALLYMESSAGE")
	msg.CreateAttr("xmlns:UDF", "TallyUDF")
	return doc, msg
}

// serialize writes the document with a fixed indent. Field values pass
// through etree's XML escaping, so engine metacharacters in user-supplied
// names cannot break out of their elements.
func serialize(doc *etree.Document) ([]byte, error) {
	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializing envelope: %w", err)
	}
	return out, nil
}
