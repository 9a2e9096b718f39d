package repository

import (
	"context"
	"sort"
	"time"

	"github.com/meinhoongagan/servicehub/models"
	"github.com/meinhoongagan/servicehub/utils"
)

type DailyEarning struct {
	Date          string  `json:"date"`
	TotalEarnings float64 `json:"totalEarnings"`
}

type EarningsReport struct {
	DailyEarnings []DailyEarning `json:"dailyEarnings"`
	TotalEarnings float64        `json:"totalEarnings"`
	TodayEarnings float64        `json:"todayEarnings"`
}

// Earnings sums the fees of the provider's non-cancelled appointments per
// calendar day in loc. Days are sorted ascending; today is the bucket whose
// key matches now's UTC date.
func (r *AppointmentRepository) Earnings(ctx context.Context, providerID uint, now time.Time, loc *time.Location) (EarningsReport, error) {
	var rows []models.Appointment
	err := r.db.WithContext(ctx).
		Select("appointment_datetime", "fees").
		Where("service_provider_id = ? AND status <> ?", providerID, models.AppointmentCancelled).
		Find(&rows).Error
	if err != nil {
		return EarningsReport{}, err
	}
	return aggregateEarnings(rows, now, loc), nil
}

func aggregateEarnings(rows []models.Appointment, now time.Time, loc *time.Location) EarningsReport {
	byDay := make(map[string]float64)
	for _, a := range rows {
		byDay[utils.DateKey(a.AppointmentDatetime, loc)] += a.Fees
	}

	report := EarningsReport{DailyEarnings: make([]DailyEarning, 0, len(byDay))}
	for day, total := range byDay {
		report.DailyEarnings = append(report.DailyEarnings, DailyEarning{Date: day, TotalEarnings: total})
	}
	sort.Slice(report.DailyEarnings, func(i, j int) bool {
		return report.DailyEarnings[i].Date < report.DailyEarnings[j].Date
	})

	today := utils.DateKey(now, time.UTC)
	for _, d := range report.DailyEarnings {
		report.TotalEarnings += d.TotalEarnings
		if d.Date == today {
			report.TodayEarnings = d.TotalEarnings
		}
	}
	return report
}
