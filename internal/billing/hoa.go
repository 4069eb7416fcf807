package billing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// DefaultBuildingCode is used when a statement carries no building code.
	DefaultBuildingCode = "EDIFICIO"
	// DefaultUnitCode is used when a statement carries no unit code.
	DefaultUnitCode = "0005"

	unitCodeWidth = 4
)

// Rubro is one line-item expense category on an HOA building expense
// statement.
type Rubro struct {
	RubroNumber *int             `json:"rubroNumber"`
	Label       *string          `json:"label"`
	Total       *decimal.Decimal `json:"total"`
}

// RubroShare is a rubro paired with its contribution to the statement
// total.
type RubroShare struct {
	Rubro
	Share decimal.Decimal `json:"share"`
}

// HoaDetails holds the HOA-specific sub-fields of a bill.
type HoaDetails struct {
	BuildingCode          *string          `json:"buildingCode"`
	BuildingAddress       *string          `json:"buildingAddress"`
	UnitCode              *string          `json:"unitCode"`
	UnitLabel             *string          `json:"unitLabel"`
	OwnerName             *string          `json:"ownerName"`
	PeriodLabel           *string          `json:"periodLabel"`
	PeriodKey             *string          `json:"periodKey"`
	PeriodYear            *int             `json:"periodYear"`
	PeriodMonth           *int             `json:"periodMonth"`
	FirstDueAmount        *decimal.Decimal `json:"firstDueAmount"`
	SecondDueAmount       *decimal.Decimal `json:"secondDueAmount"`
	TotalBuildingExpenses *decimal.Decimal `json:"totalBuildingExpenses"`
	TotalToPayUnit        *decimal.Decimal `json:"totalToPayUnit"`
	Rubros                []Rubro          `json:"rubros"`
}

// PeriodKeyFor returns the canonical "YYYY-MM" period key.
func PeriodKeyFor(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// NormalizeHoaDetails canonicalizes HOA details: building and unit codes
// fall back to their defaults when absent, the unit code is padded to its
// canonical width, the period key is recomputed from periodYear and
// periodMonth whenever both are known (a stale key is never kept), and the
// period label is brought into the Spanish long form. It returns nil for
// nil input and never fails.
func NormalizeHoaDetails(details *HoaDetails) *HoaDetails {
	if details == nil {
		return nil
	}

	normalized := *details

	if normalized.BuildingCode == nil {
		code := DefaultBuildingCode
		normalized.BuildingCode = &code
	}

	if normalized.UnitCode == nil {
		code := DefaultUnitCode
		normalized.UnitCode = &code
	} else {
		padded := padUnitCode(*normalized.UnitCode)
		normalized.UnitCode = &padded
	}

	if normalized.PeriodYear != nil && normalized.PeriodMonth != nil {
		key := PeriodKeyFor(*normalized.PeriodYear, *normalized.PeriodMonth)
		normalized.PeriodKey = &key

		if normalized.PeriodLabel == nil {
			if label := FormatHoaPeriod(*normalized.PeriodMonth, *normalized.PeriodYear); label != "" {
				normalized.PeriodLabel = &label
			}
		}
	}

	if normalized.PeriodLabel != nil {
		label := EnsureSpanishPeriodLabel(*normalized.PeriodLabel)
		normalized.PeriodLabel = &label
	}

	return &normalized
}

func padUnitCode(code string) string {
	trimmed := strings.TrimSpace(code)
	if len(trimmed) >= unitCodeWidth {
		return trimmed
	}

	return strings.Repeat("0", unitCodeWidth-len(trimmed)) + trimmed
}

// MergeHoaDetails shallow-merges a patch over existing details: non-nil
// patch fields win, everything else is preserved. A patch rubro list
// replaces the existing one only when it has entries.
func MergeHoaDetails(existing, patch *HoaDetails) *HoaDetails {
	if existing == nil {
		if patch == nil {
			return nil
		}
		merged := *patch
		return &merged
	}

	merged := *existing
	if patch == nil {
		return &merged
	}

	if patch.BuildingCode != nil {
		merged.BuildingCode = patch.BuildingCode
	}
	if patch.BuildingAddress != nil {
		merged.BuildingAddress = patch.BuildingAddress
	}
	if patch.UnitCode != nil {
		merged.UnitCode = patch.UnitCode
	}
	if patch.UnitLabel != nil {
		merged.UnitLabel = patch.UnitLabel
	}
	if patch.OwnerName != nil {
		merged.OwnerName = patch.OwnerName
	}
	if patch.PeriodLabel != nil {
		merged.PeriodLabel = patch.PeriodLabel
	}
	if patch.PeriodKey != nil {
		merged.PeriodKey = patch.PeriodKey
	}
	if patch.PeriodYear != nil {
		merged.PeriodYear = patch.PeriodYear
	}
	if patch.PeriodMonth != nil {
		merged.PeriodMonth = patch.PeriodMonth
	}
	if patch.FirstDueAmount != nil {
		merged.FirstDueAmount = patch.FirstDueAmount
	}
	if patch.SecondDueAmount != nil {
		merged.SecondDueAmount = patch.SecondDueAmount
	}
	if patch.TotalBuildingExpenses != nil {
		merged.TotalBuildingExpenses = patch.TotalBuildingExpenses
	}
	if patch.TotalToPayUnit != nil {
		merged.TotalToPayUnit = patch.TotalToPayUnit
	}
	if len(patch.Rubros) > 0 {
		merged.Rubros = patch.Rubros
	}

	return &merged
}

// CalculateHoaTotals sums the rubro totals (missing totals count as zero)
// and pairs each rubro with its contribution.
func CalculateHoaTotals(rubros []Rubro) (decimal.Decimal, []RubroShare) {
	total := decimal.Zero
	shares := make([]RubroShare, 0, len(rubros))

	for _, rubro := range rubros {
		share := decimal.Zero
		if rubro.Total != nil {
			share = *rubro.Total
		}

		total = total.Add(share)
		shares = append(shares, RubroShare{Rubro: rubro, Share: share})
	}

	return total, shares
}
