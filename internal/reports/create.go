package reports

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/tallygate-dev/tallygate/internal/envelope"
	"github.com/tallygate-dev/tallygate/internal/model"
	"github.com/tallygate-dev/tallygate/internal/tallyerr"
)

// The engine acknowledges imports with free text, not a typed status code.
// Success is inferred from this marker; its absence means "unconfirmed",
// not "failed" — the protocol cannot tell those apart.
const createdMarker = "created"

// CreateLedger creates a ledger account. When the response carries no
// success marker the result is returned together with an UnconfirmedError;
// callers decide whether to treat that as a warning or a failure.
func (s *Service) CreateLedger(ctx context.Context, c model.CreateLedger) (*CreateResult, error) {
	payload, err := envelope.EncodeLedgerCreate(c)
	if err != nil {
		return nil, err
	}
	return s.sendCreate(ctx, "create ledger "+c.Name, payload)
}

// CreateStockItem creates an inventory item.
func (s *Service) CreateStockItem(ctx context.Context, c model.CreateStockItem) (*CreateResult, error) {
	payload, err := envelope.EncodeStockItemCreate(c)
	if err != nil {
		return nil, err
	}
	return s.sendCreate(ctx, "create stock item "+c.Name, payload)
}

// CreateVoucher records a transaction of the command's kind.
func (s *Service) CreateVoucher(ctx context.Context, c model.CreateVoucher) (*CreateResult, error) {
	payload, err := envelope.EncodeVoucherCreate(c)
	if err != nil {
		return nil, err
	}
	return s.sendCreate(ctx, "create "+strings.ToLower(string(c.Kind))+" voucher", payload)
}

func (s *Service) sendCreate(ctx context.Context, command string, payload []byte) (*CreateResult, error) {
	body, err := s.transport.Send(ctx, payload)
	if err != nil {
		return nil, err
	}

	result := &CreateResult{Command: command, Response: snippet(body)}
	if strings.Contains(strings.ToLower(string(body)), createdMarker) {
		result.Confirmed = true
		s.log.Info("command confirmed", zap.String("command", command))
		return result, nil
	}
	s.log.Warn("command unconfirmed", zap.String("command", command))
	return result, &tallyerr.UnconfirmedError{Command: command, Snippet: result.Response}
}

// Backup asks the engine to back up company data to a path on its machine.
// Confirmation follows the engine's free-text status, with the same
// unconfirmed semantics as creation commands.
func (s *Service) Backup(ctx context.Context, r model.BackupRequest) (*BackupResult, error) {
	payload, err := envelope.EncodeBackup(r)
	if err != nil {
		return nil, err
	}
	body, err := s.transport.Send(ctx, payload)
	if err != nil {
		return nil, err
	}

	result := &BackupResult{Path: r.Path, Response: snippet(body)}
	lower := strings.ToLower(string(body))
	if strings.Contains(lower, "success") || strings.Contains(lower, "backup") {
		result.Confirmed = true
		return result, nil
	}
	return result, &tallyerr.UnconfirmedError{Command: "backup", Snippet: result.Response}
}

func snippet(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max]
	}
	return s
}
