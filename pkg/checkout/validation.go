package checkout

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/harvestly/harvestly-backend/pkg/enums"
	pkgerrors "github.com/harvestly/harvestly-backend/pkg/errors"
)

// MOQLine describes the data required to verify a line item's minimum order quantity.
type MOQLine struct {
	ProductID   uuid.UUID
	ProductName string
	Unit        enums.ProductUnit
	MOQ         int
	Quantity    int
}

// MOQViolation exposes the data returned to callers when a validation fails.
type MOQViolation struct {
	ProductID    uuid.UUID         `json:"product_id"`
	ProductName  string            `json:"product_name,omitempty"`
	Unit         enums.ProductUnit `json:"unit,omitempty"`
	RequiredQty  int               `json:"required_qty"`
	RequestedQty int               `json:"requested_qty"`
	Message      string            `json:"message"`
}

// CheckLineMOQ applies the admission rule to a single line. It returns nil when
// the requested quantity is admissible. A missing or zero MOQ counts as 1.
func CheckLineMOQ(line MOQLine) *MOQViolation {
	required := line.MOQ
	if required < 1 {
		required = 1
	}
	if line.Quantity >= required {
		return nil
	}
	return &MOQViolation{
		ProductID:    line.ProductID,
		ProductName:  line.ProductName,
		Unit:         line.Unit,
		RequiredQty:  required,
		RequestedQty: line.Quantity,
		Message:      fmt.Sprintf("%s requires a minimum order of %d %s", line.ProductName, required, line.Unit),
	}
}

// ValidateLineMOQ wraps CheckLineMOQ into the typed error the cart boundary expects.
func ValidateLineMOQ(line MOQLine) error {
	violation := CheckLineMOQ(line)
	if violation == nil {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeStateConflict, violation.Message).WithDetails(map[string]any{
		"violations": []MOQViolation{*violation},
	})
}

// ValidateCartMOQ checks every provided line and collects all violations so the
// buyer sees every problem at once rather than fixing them one by one.
func ValidateCartMOQ(lines []MOQLine) error {
	var violations []MOQViolation
	for _, line := range lines {
		if v := CheckLineMOQ(line); v != nil {
			violations = append(violations, *v)
		}
	}
	if len(violations) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("minimum order quantity not met for %d item(s)", len(violations))).WithDetails(map[string]any{
		"violations": violations,
	})
}
