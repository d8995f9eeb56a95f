package controllers

import (
	"context"
	"net/http"

	"github.com/adityarao/billsync-backend/api/responses"
	"github.com/adityarao/billsync-backend/api/validators"
	"github.com/adityarao/billsync-backend/internal/audit"
	pkgerrors "github.com/adityarao/billsync-backend/pkg/errors"
	"github.com/adityarao/billsync-backend/pkg/logger"
)

// AuditService is the surface the audit endpoints depend on.
type AuditService interface {
	Delta(ctx context.Context, source []string) (*audit.Report, error)
}

type auditDeltaRequest struct {
	BillNumbers []string `json:"bill_numbers" validate:"required,min=1"`
}

// AuditDelta compares a client-supplied bill number list against the orders
// table and returns the three-way split.
func AuditDelta(svc AuditService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auditDeltaRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.Delta(r.Context(), req.BillNumbers)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "run delta audit"))
			return
		}
		responses.WriteSuccess(w, report)
	}
}
