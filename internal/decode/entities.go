package decode

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tallygate-dev/tallygate/internal/envelope"
	"github.com/tallygate-dev/tallygate/internal/model"
	"github.com/tallygate-dev/tallygate/internal/tallyerr"
)

// Candidate tag tables, one per entity field. Order matters: the first
// present, non-empty candidate wins.
var (
	nameTags        = []string{"NAME", "LEDGERNAME"}
	parentTags      = []string{"PARENT"}
	openingTags     = []string{"OPENINGBALANCE"}
	closingTags     = []string{"CLOSINGBALANCE"}
	voucherTypeTags = []string{"VOUCHERTYPENAME", "VCHTYPE", "VOUCHERTYPE"}
	voucherNumTags  = []string{"VOUCHERNUMBER"}
	voucherDateTags = []string{"DATE"}
	partyTags       = []string{"PARTYLEDGERNAME"}
	narrationTags   = []string{"NARRATION"}
	amountTags      = []string{"AMOUNT"}
	deemedTags      = []string{"ISDEEMEDPOSITIVE"}
	baseUnitTags    = []string{"BASEUNITS", "BASEUNIT"}
	stockQtyTags    = []string{"CLOSINGBALANCE", "CLOSINGQTY"}
	stockRateTags   = []string{"CLOSINGRATE"}
	stockValueTags  = []string{"CLOSINGVALUE"}
	billNumTags     = []string{"BILLNUMBER", "VOUCHERNUMBER"}
	billDateTags    = []string{"BILLDATE", "DATE"}
	billAmountTags  = []string{"AMOUNT", "CLOSINGBALANCE"}
	auditDateTags   = []string{"DATE", "ALTERDATE"}
	auditTimeTags   = []string{"TIME", "ALTERTIME"}
	auditActionTags = []string{"ACTION", "ALTERATION"}
	auditUserTags   = []string{"USERNAME", "ALTEREDBY"}
	taxableTags     = []string{"TAXABLEVALUE", "AMOUNT"}
	taxAmountTags   = []string{"GSTAMOUNT", "IGSTAMOUNT"}
)

// voucherBalanceEpsilon bounds the residual allowed when a fully decoded
// voucher's entries are summed.
var voucherBalanceEpsilon = decimal.NewFromFloat(0.01)

// Entry-list wrappers seen across engine versions.
var entryListTags = []string{"ALLLEDGERENTRIES.LIST", "LEDGERENTRIES.LIST"}

// Ledger decodes one LEDGER node.
func Ledger(n *envelope.Node) (model.Ledger, error) {
	name, ok := resolve(n, nameTags)
	if !ok {
		return model.Ledger{}, &tallyerr.AmbiguityError{Entity: "LEDGER", Field: "NAME"}
	}
	ledger := model.Ledger{
		Name:        name,
		ParentGroup: Resolve(n, parentTags, ""),
	}

	opening, present, err := ResolveDecimal(n, openingTags)
	if err != nil {
		return model.Ledger{}, err
	}
	if present {
		ledger.OpeningBalance = &opening
	}
	closing, present, err := ResolveDecimal(n, closingTags)
	if err != nil {
		return model.Ledger{}, err
	}
	if present {
		ledger.ClosingBalance = &closing
	}
	return ledger, nil
}

// Ledgers decodes every LEDGER node under root in document order. A failed
// entity is recorded and skipped; the rest of the collection still decodes.
func Ledgers(root *envelope.Node) ([]model.Ledger, []error) {
	var out []model.Ledger
	var errs []error
	for _, n := range root.All("LEDGER") {
		l, err := Ledger(n)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, l)
	}
	return out, errs
}

// Group decodes one GROUP node.
func Group(n *envelope.Node) (model.Group, error) {
	name, ok := resolve(n, nameTags)
	if !ok {
		return model.Group{}, &tallyerr.AmbiguityError{Entity: "GROUP", Field: "NAME"}
	}
	return model.Group{Name: name, Parent: Resolve(n, parentTags, "")}, nil
}

// Groups decodes every GROUP node under root and verifies the result is a
// forest. A parent cycle among the decoded groups is a decode error, not a
// silently accepted hierarchy.
func Groups(root *envelope.Node) ([]model.Group, []error) {
	var out []model.Group
	var errs []error
	for _, n := range root.All("GROUP") {
		g, err := Group(n)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, g)
	}
	errs = append(errs, groupCycles(out)...)
	return out, errs
}

// groupCycles walks parent links within the decoded set and reports each
// group that sits on a cycle.
func groupCycles(groups []model.Group) []error {
	parent := make(map[string]string, len(groups))
	for _, g := range groups {
		parent[g.Name] = g.Parent
	}

	var errs []error
	reported := make(map[string]bool)
	for _, g := range groups {
		seen := map[string]bool{}
		name := g.Name
		for name != "" && !seen[name] {
			seen[name] = true
			name = parent[name]
		}
		if name != "" && !reported[name] {
			reported[name] = true
			errs = append(errs, &tallyerr.AmbiguityError{
				Entity: "GROUP",
				Field:  "PARENT",
				Detail: fmt.Sprintf("cycle through group %q", name),
			})
		}
	}
	return errs
}

// LedgerEntry decodes one entry-list node inside a voucher.
func LedgerEntry(n *envelope.Node) (model.LedgerEntry, error) {
	name, ok := resolve(n, nameTags)
	if !ok {
		return model.LedgerEntry{}, &tallyerr.AmbiguityError{Entity: "LEDGERENTRY", Field: "LEDGERNAME"}
	}
	amount, present, err := ResolveDecimal(n, amountTags)
	if err != nil {
		return model.LedgerEntry{}, err
	}
	if !present {
		return model.LedgerEntry{}, &tallyerr.AmbiguityError{Entity: "LEDGERENTRY", Field: "AMOUNT"}
	}
	return model.LedgerEntry{
		LedgerName: name,
		Amount:     amount,
		IsDebit:    Resolve(n, deemedTags, "") == "Yes",
	}, nil
}

// Voucher decodes one VOUCHER node, including its ledger entries. When every
// entry decodes, the amounts must sum to zero within the balance epsilon;
// an unbalanced voucher is a protocol ambiguity, never a silent total.
func Voucher(n *envelope.Node) (model.Voucher, error) {
	v := model.Voucher{
		Type:        Resolve(n, voucherTypeTags, ""),
		Number:      Resolve(n, voucherNumTags, ""),
		PartyLedger: Resolve(n, partyTags, ""),
		Narration:   Resolve(n, narrationTags, ""),
	}

	date, present, err := ResolveDate(n, voucherDateTags)
	if err != nil {
		return model.Voucher{}, err
	}
	if present {
		v.Date = date
	}

	amount, _, err := ResolveDecimal(n, amountTags)
	if err != nil {
		return model.Voucher{}, err
	}
	v.Amount = amount

	var entryNodes []*envelope.Node
	for _, tag := range entryListTags {
		entryNodes = append(entryNodes, n.All(tag)...)
	}
	for _, en := range entryNodes {
		entry, err := LedgerEntry(en)
		if err != nil {
			return model.Voucher{}, err
		}
		v.Entries = append(v.Entries, entry)
	}

	if len(v.Entries) > 0 {
		sum := decimal.Zero
		for _, e := range v.Entries {
			sum = sum.Add(e.Amount)
		}
		if sum.Abs().GreaterThan(voucherBalanceEpsilon) {
			return model.Voucher{}, &tallyerr.AmbiguityError{
				Entity: "VOUCHER " + v.Number,
				Field:  "ALLLEDGERENTRIES",
				Detail: fmt.Sprintf("entries sum to %s, expected 0", sum.StringFixed(2)),
			}
		}
	}

	return v, nil
}

// Vouchers decodes every VOUCHER node under root.
func Vouchers(root *envelope.Node) ([]model.Voucher, []error) {
	var out []model.Voucher
	var errs []error
	for _, n := range root.All("VOUCHER") {
		v, err := Voucher(n)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, v)
	}
	return out, errs
}

// StockItem decodes one STOCKITEM node.
func StockItem(n *envelope.Node) (model.StockItem, error) {
	name, ok := resolve(n, nameTags)
	if !ok {
		return model.StockItem{}, &tallyerr.AmbiguityError{Entity: "STOCKITEM", Field: "NAME"}
	}
	item := model.StockItem{
		Name:     name,
		BaseUnit: Resolve(n, baseUnitTags, ""),
	}

	qty, present, err := ResolveDecimal(n, stockQtyTags)
	if err != nil {
		return model.StockItem{}, err
	}
	if present {
		item.ClosingQty = &qty
	}
	rate, present, err := ResolveDecimal(n, stockRateTags)
	if err != nil {
		return model.StockItem{}, err
	}
	if present {
		item.ClosingRate = &rate
	}
	value, present, err := ResolveDecimal(n, stockValueTags)
	if err != nil {
		return model.StockItem{}, err
	}
	if present {
		item.ClosingValue = &value
	}
	return item, nil
}

// StockItems decodes every STOCKITEM node under root.
func StockItems(root *envelope.Node) ([]model.StockItem, []error) {
	var out []model.StockItem
	var errs []error
	for _, n := range root.All("STOCKITEM") {
		s, err := StockItem(n)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, s)
	}
	return out, errs
}

// Bill decodes one BILL node for aging analysis.
func Bill(n *envelope.Node) (model.Bill, error) {
	amount, present, err := ResolveDecimal(n, billAmountTags)
	if err != nil {
		return model.Bill{}, err
	}
	if !present {
		return model.Bill{}, &tallyerr.AmbiguityError{Entity: "BILL", Field: "AMOUNT"}
	}
	b := model.Bill{
		Number: Resolve(n, billNumTags, ""),
		Amount: amount,
	}
	date, present, err := ResolveDate(n, billDateTags)
	if err != nil {
		return model.Bill{}, err
	}
	if present {
		b.Date = date
	}
	return b, nil
}

// Bills decodes bill rows for aging. Reports that lack BILL nodes list the
// outstanding amounts as VOUCHER rows instead, so both layouts are accepted.
func Bills(root *envelope.Node) ([]model.Bill, []error) {
	nodes := root.All("BILL")
	if len(nodes) == 0 {
		nodes = root.All("VOUCHER")
	}
	var out []model.Bill
	var errs []error
	for _, n := range nodes {
		b, err := Bill(n)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, b)
	}
	return out, errs
}

// Companies decodes every COMPANY node under root.
func Companies(root *envelope.Node) ([]model.Company, []error) {
	var out []model.Company
	var errs []error
	for _, n := range root.All("COMPANY") {
		name, ok := resolve(n, nameTags)
		if !ok {
			errs = append(errs, &tallyerr.AmbiguityError{Entity: "COMPANY", Field: "NAME"})
			continue
		}
		out = append(out, model.Company{Name: name})
	}
	return out, errs
}

// VoucherTypes decodes every VOUCHERTYPE node under root.
func VoucherTypes(root *envelope.Node) ([]model.VoucherType, []error) {
	var out []model.VoucherType
	var errs []error
	for _, n := range root.All("VOUCHERTYPE") {
		name, ok := resolve(n, nameTags)
		if !ok {
			errs = append(errs, &tallyerr.AmbiguityError{Entity: "VOUCHERTYPE", Field: "NAME"})
			continue
		}
		out = append(out, model.VoucherType{Name: name, Parent: Resolve(n, parentTags, "")})
	}
	return out, errs
}

// AuditEntries decodes audit rows. Engines report them either as VOUCHER or
// AUDITENTRY nodes, with ALTER* tags on older versions.
func AuditEntries(root *envelope.Node) []model.AuditEntry {
	nodes := root.All("VOUCHER")
	if len(nodes) == 0 {
		nodes = root.All("AUDITENTRY")
	}
	var out []model.AuditEntry
	for _, n := range nodes {
		out = append(out, model.AuditEntry{
			Date:          Resolve(n, auditDateTags, ""),
			Time:          Resolve(n, auditTimeTags, ""),
			VoucherType:   Resolve(n, voucherTypeTags, ""),
			VoucherNumber: Resolve(n, voucherNumTags, ""),
			Action:        Resolve(n, auditActionTags, ""),
			User:          Resolve(n, auditUserTags, ""),
		})
	}
	return out
}

// GstEntries decodes GST rows. Engines report them either as GSTRETURN or
// plain VOUCHER nodes; the taxable value falls back to the voucher amount
// when no explicit TAXABLEVALUE is present.
func GstEntries(root *envelope.Node) ([]model.GstEntry, []error) {
	nodes := root.All("GSTRETURN")
	if len(nodes) == 0 {
		nodes = root.All("VOUCHER")
	}
	var out []model.GstEntry
	var errs []error
	for _, n := range nodes {
		taxable, present, err := ResolveDecimal(n, taxableTags)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !present {
			errs = append(errs, &tallyerr.AmbiguityError{Entity: "GSTRETURN", Field: "TAXABLEVALUE"})
			continue
		}
		entry := model.GstEntry{
			VoucherType:  Resolve(n, voucherTypeTags, ""),
			TaxableValue: taxable,
		}
		tax, present, err := ResolveDecimal(n, taxAmountTags)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if present {
			entry.TaxAmount = &tax
		}
		out = append(out, entry)
	}
	return out, errs
}
