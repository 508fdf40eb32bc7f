package get_month_availability

import (
	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// DayResponse агрегат одного дня календаря
type DayResponse struct {
	Date          types.Date `json:"date"`
	HasData       bool       `json:"hasData"`
	FullCount     int        `json:"fullCount"`
	AMOnlyCount   int        `json:"amOnlyCount"`
	PMOnlyCount   int        `json:"pmOnlyCount"`
	SunsetCount   int        `json:"sunsetCount"`
	ReservedCount int        `json:"reservedCount"`
	IsReserved    bool       `json:"isReserved"`
}

// MonthResponse HTTP response model
type MonthResponse struct {
	Month string        `json:"month"` // "2025-06"
	Days  []DayResponse `json:"days"`
}

// FromDomain конвертирует агрегаты движка в HTTP response
func FromDomain(month types.YearMonth, days []domain.DayAggregate) *MonthResponse {
	resp := &MonthResponse{
		Month: month.String(),
		Days:  make([]DayResponse, 0, len(days)),
	}
	for _, d := range days {
		resp.Days = append(resp.Days, DayResponse{
			Date:          d.Date,
			HasData:       d.HasData(),
			FullCount:     d.FullCount,
			AMOnlyCount:   d.AMOnlyCount,
			PMOnlyCount:   d.PMOnlyCount,
			SunsetCount:   d.SunsetCount,
			ReservedCount: d.ReservedCount,
			IsReserved:    d.IsReserved,
		})
	}
	return resp
}
