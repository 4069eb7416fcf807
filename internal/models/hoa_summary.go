package models

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/tolva-app/backend/internal/billing"
	"gorm.io/gorm"
)

// HoaSummary is the per-period aggregate of a unit's HOA expense
// statements. There is exactly one row per user, building, unit and
// billing period, addressed by a deterministic composite key so that
// repeated parses of the same statement update in place.
type HoaSummary struct {
	ID string `json:"id" gorm:"primaryKey"`
	Timestamps
	UserID                string               `json:"userId" gorm:"index"`
	BuildingCode          string               `json:"buildingCode"`
	BuildingAddress       string               `json:"buildingAddress"`
	UnitCode              string               `json:"unitCode"`
	UnitLabel             string               `json:"unitLabel"`
	OwnerName             string               `json:"ownerName"`
	PeriodLabel           string               `json:"periodLabel"`
	PeriodKey             string               `json:"periodKey" gorm:"index"`
	PeriodYear            int                  `json:"periodYear"`
	PeriodMonth           int                  `json:"periodMonth"`
	FirstDueAmount        *decimal.Decimal     `json:"firstDueAmount" gorm:"type:DECIMAL(20,8)"`
	SecondDueAmount       *decimal.Decimal     `json:"secondDueAmount" gorm:"type:DECIMAL(20,8)"`
	TotalBuildingExpenses *decimal.Decimal     `json:"totalBuildingExpenses" gorm:"type:DECIMAL(20,8)"`
	TotalToPayUnit        *decimal.Decimal     `json:"totalToPayUnit" gorm:"type:DECIMAL(20,8)"`
	Rubros                []billing.Rubro      `json:"rubros" gorm:"serializer:json"`
	RubrosTotal           decimal.Decimal      `json:"rubrosTotal" gorm:"type:DECIMAL(20,8)"`
	RubrosWithTotals      []billing.RubroShare `json:"rubrosWithTotals" gorm:"serializer:json"`
}

// SummaryKey builds the composite primary key for an HOA summary.
func SummaryKey(userID, buildingCode, unitCode, periodKey string) string {
	return fmt.Sprintf("%s_%s_%s_%s", userID, buildingCode, unitCode, periodKey)
}

// UpsertHoaSummary merges the given HOA details into the summary for
// their period. When the owning user or the billing period cannot be
// resolved the operation is a no-op: partial extraction data must never
// create a summary row with a broken identity.
func UpsertHoaSummary(userID string, details *billing.HoaDetails) error {
	normalized := billing.NormalizeHoaDetails(details)

	if userID == "" || normalized == nil || normalized.PeriodYear == nil || normalized.PeriodMonth == nil {
		log.Warn().
			Str("userId", userID).
			Bool("hasDetails", normalized != nil).
			Msg("skipping HOA summary upsert, period or user unresolved")
		return nil
	}

	periodKey := billing.PeriodKeyFor(*normalized.PeriodYear, *normalized.PeriodMonth)
	key := SummaryKey(userID, *normalized.BuildingCode, *normalized.UnitCode, periodKey)

	var summary HoaSummary
	err := DB.First(&summary, "id = ?", key).Error
	if err != nil && !errors.Is(err, ErrResourceNotFound) && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	exists := err == nil

	merged := billing.MergeHoaDetails(summary.details(), normalized)

	summary.ID = key
	summary.UserID = userID
	summary.apply(merged)
	summary.PeriodKey = periodKey
	summary.RubrosTotal, summary.RubrosWithTotals = billing.CalculateHoaTotals(summary.Rubros)

	// Updating the loaded row keeps its original CreatedAt.
	if exists {
		return DB.Save(&summary).Error
	}

	return DB.Create(&summary).Error
}

// details reconstructs the HOA details stored on the summary so that a
// new statement can be merged over them.
func (s *HoaSummary) details() *billing.HoaDetails {
	if s.ID == "" {
		return nil
	}

	details := billing.HoaDetails{
		BuildingCode:          optionalString(s.BuildingCode),
		BuildingAddress:       optionalString(s.BuildingAddress),
		UnitCode:              optionalString(s.UnitCode),
		UnitLabel:             optionalString(s.UnitLabel),
		OwnerName:             optionalString(s.OwnerName),
		PeriodLabel:           optionalString(s.PeriodLabel),
		PeriodKey:             optionalString(s.PeriodKey),
		FirstDueAmount:        s.FirstDueAmount,
		SecondDueAmount:       s.SecondDueAmount,
		TotalBuildingExpenses: s.TotalBuildingExpenses,
		TotalToPayUnit:        s.TotalToPayUnit,
		Rubros:                s.Rubros,
	}

	if s.PeriodYear != 0 {
		year := s.PeriodYear
		details.PeriodYear = &year
	}
	if s.PeriodMonth != 0 {
		month := s.PeriodMonth
		details.PeriodMonth = &month
	}

	return &details
}

func (s *HoaSummary) apply(details *billing.HoaDetails) {
	s.BuildingCode = stringValue(details.BuildingCode)
	s.BuildingAddress = stringValue(details.BuildingAddress)
	s.UnitCode = stringValue(details.UnitCode)
	s.UnitLabel = stringValue(details.UnitLabel)
	s.OwnerName = stringValue(details.OwnerName)
	s.PeriodLabel = stringValue(details.PeriodLabel)

	if details.PeriodYear != nil {
		s.PeriodYear = *details.PeriodYear
	}
	if details.PeriodMonth != nil {
		s.PeriodMonth = *details.PeriodMonth
	}

	s.FirstDueAmount = details.FirstDueAmount
	s.SecondDueAmount = details.SecondDueAmount
	s.TotalBuildingExpenses = details.TotalBuildingExpenses
	s.TotalToPayUnit = details.TotalToPayUnit

	s.Rubros = details.Rubros
	if s.Rubros == nil {
		s.Rubros = []billing.Rubro{}
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
