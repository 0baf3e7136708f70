package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/harvestly/harvestly-backend/api/responses"
	pkgerrors "github.com/harvestly/harvestly-backend/pkg/errors"
	"github.com/harvestly/harvestly-backend/pkg/logger"
)

const buyerIDHeader = "X-Buyer-Id"

type buyerIDKey struct{}

// BuyerContext requires the buyer identity header on cart routes and attaches
// the parsed id to the request context and log entries.
func BuyerContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(buyerIDHeader)
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "buyer identity required"))
				return
			}

			buyerID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid buyer id"))
				return
			}

			ctx := context.WithValue(r.Context(), buyerIDKey{}, buyerID)
			if logg != nil {
				ctx = logg.WithBuyerID(ctx, buyerID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BuyerIDFromContext returns the buyer id set by BuyerContext, or uuid.Nil.
func BuyerIDFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(buyerIDKey{}).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
