package ports

import (
	"context"

	"go.trai.ch/sci/internal/core/domain"
)

// AuditStore persists audit records beside the files they describe.
//
//go:generate go run go.uber.org/mock/mockgen -source=audit_store.go -destination=mocks/mock_audit_store.go -package=mocks
type AuditStore interface {
	// Read loads the record at path.
	// Returns domain.ErrAuditNotFound if it does not exist and
	// domain.ErrMalformedAuditFile if it does not parse.
	Read(ctx context.Context, path string) (*domain.AuditRecord, error)

	// Lookup loads the sibling record of url resolved under root.
	// Returns nil, nil if there is none.
	Lookup(ctx context.Context, root, url string) (*domain.AuditRecord, error)

	// Write stores one copy of record beside every output under root and
	// returns the written record paths in output order.
	Write(ctx context.Context, root string, record domain.AuditRecord, outputs []string) ([]string, error)
}
