package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Employee is a shop employee paid by the day.
// OTRate of zero means overtime is paid at DailyRate / 8 per hour.
type Employee struct {
	ID        string          `json:"_id,omitempty"`
	Name      string          `json:"name"`
	Address   string          `json:"address"`
	Mobile    string          `json:"mobile"`
	DailyRate decimal.Decimal `json:"dailyRate"`
	OTRate    decimal.Decimal `json:"otRate"`
}

// HourlyOTRate returns the overtime rate per hour.
func (e Employee) HourlyOTRate() decimal.Decimal {
	if !e.OTRate.IsZero() {
		return e.OTRate
	}
	return e.DailyRate.Div(decimal.NewFromInt(8))
}

// AttendanceInput is one employee's clock times for a day, HH:MM.
type AttendanceInput struct {
	EmployeeID string          `json:"employeeId"`
	InTime     string          `json:"inTime"`
	OutTime    string          `json:"outTime"`
	OTHours    decimal.Decimal `json:"otHours"`
}

// AttendanceSheet is the body of POST /attendance/bulk.
type AttendanceSheet struct {
	Date    string            `json:"date"`
	Records []AttendanceInput `json:"records"`
}

// AttendanceEntry is a saved attendance record as listed in reports.
type AttendanceEntry struct {
	ID          string          `json:"_id"`
	EmployeeID  Ref             `json:"employeeId"`
	InTime      string          `json:"inTime"`
	OutTime     string          `json:"outTime"`
	OTHours     decimal.Decimal `json:"otHours"`
	DailySalary decimal.Decimal `json:"dailySalary"`
}

// Advance is a salary advance paid to an employee.
type Advance struct {
	ID         string          `json:"_id,omitempty"`
	EmployeeID Ref             `json:"employeeId"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
}

const (
	fullDayMinutes = 7 * 60
	halfDayMinutes = 4 * 60
)

// DailySalary computes a day's pay. More than 7 hours worked earns the
// daily rate, 4 hours or more earns half, less earns nothing; overtime
// hours are added at the hourly OT rate. Missing or malformed clock times
// earn nothing. The result is rounded to 2 places.
func DailySalary(emp Employee, att AttendanceInput) decimal.Decimal {
	in, err := parseClock(att.InTime)
	if err != nil {
		return decimal.Zero
	}
	out, err := parseClock(att.OutTime)
	if err != nil {
		return decimal.Zero
	}
	worked := out - in
	if worked < 0 {
		worked = 0
	}

	base := decimal.Zero
	switch {
	case worked > fullDayMinutes:
		base = emp.DailyRate
	case worked >= halfDayMinutes:
		base = emp.DailyRate.Div(decimal.NewFromInt(2))
	}

	ot := att.OTHours.Mul(emp.HourlyOTRate())
	return base.Add(ot).Round(2)
}

// parseClock returns minutes since midnight for an HH:MM string.
func parseClock(s string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	hh, err := strconv.Atoi(h)
	if err != nil || hh < 0 || hh > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	mm, err := strconv.Atoi(m)
	if err != nil || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hh*60 + mm, nil
}

// Record types of the monthly attendance feed.
const (
	RecordAttendance = "attendance"
	RecordAdvance    = "advance"
)

// DailyRecord is one salary or advance movement in the monthly feed.
type DailyRecord struct {
	Date   string          `json:"date"`
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// EmployeeMonthFeed is one employee's records from
// GET /attendance/month/{year}/{month}.
type EmployeeMonthFeed struct {
	EmployeeID   string        `json:"employeeId"`
	Name         string        `json:"name"`
	DailyRecords []DailyRecord `json:"dailyRecords"`
}

// DayCell is one day of an employee's monthly sheet. Pending is the
// carried balance plus the day's salary; Balance is Pending less the day's
// advances and carries to the next day.
type DayCell struct {
	Date       string          `json:"date"`
	Weekend    bool            `json:"weekend"`
	HasRecords bool            `json:"hasRecords"`
	Salary     decimal.Decimal `json:"salary"`
	Advance    decimal.Decimal `json:"advance"`
	Pending    decimal.Decimal `json:"pending"`
	Balance    decimal.Decimal `json:"balance"`
}

// EmployeeMonth is the computed sheet row of one employee.
type EmployeeMonth struct {
	EmployeeID string          `json:"employeeId"`
	Name       string          `json:"name"`
	Days       []DayCell       `json:"days"`
	Closing    decimal.Decimal `json:"closing"`
}

// MonthDates returns every day of the month at midnight UTC.
func MonthDates(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	var out []time.Time
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// BuildMonthlySheet folds the feed into per-day running balances.
func BuildMonthlySheet(year int, month time.Month, feed []EmployeeMonthFeed) []EmployeeMonth {
	dates := MonthDates(year, month)
	sheet := make([]EmployeeMonth, 0, len(feed))
	for _, emp := range feed {
		byDate := make(map[string][]DailyRecord)
		for _, r := range emp.DailyRecords {
			byDate[r.Date] = append(byDate[r.Date], r)
		}

		running := decimal.Zero
		row := EmployeeMonth{EmployeeID: emp.EmployeeID, Name: emp.Name, Days: make([]DayCell, 0, len(dates))}
		for _, d := range dates {
			key := d.Format("2006-01-02")
			records := byDate[key]

			salary, advance := decimal.Zero, decimal.Zero
			for _, r := range records {
				switch r.Type {
				case RecordAttendance:
					salary = salary.Add(r.Amount)
				case RecordAdvance:
					advance = advance.Add(r.Amount.Abs())
				}
			}
			pending := running.Add(salary)
			balance := pending.Sub(advance)
			running = balance

			wd := d.Weekday()
			row.Days = append(row.Days, DayCell{
				Date:       key,
				Weekend:    wd == time.Saturday || wd == time.Sunday,
				HasRecords: len(records) > 0,
				Salary:     salary,
				Advance:    advance,
				Pending:    pending,
				Balance:    balance,
			})
		}
		row.Closing = running
		sheet = append(sheet, row)
	}
	return sheet
}
