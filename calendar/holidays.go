package calendar

// NYSE full-day closings, 2024 through 2027.
var nyseHolidayList = []string{
	"2024-01-01", "2024-01-15", "2024-02-19", "2024-03-29", "2024-05-27",
	"2024-06-19", "2024-07-04", "2024-09-02", "2024-11-28", "2024-12-25",
	"2025-01-01", "2025-01-09", "2025-01-20", "2025-02-17", "2025-04-18",
	"2025-05-26", "2025-06-19", "2025-07-04", "2025-09-01", "2025-11-27",
	"2025-12-25",
	"2026-01-01", "2026-01-19", "2026-02-16", "2026-04-03", "2026-05-25",
	"2026-06-19", "2026-07-03", "2026-09-07", "2026-11-26", "2026-12-25",
	"2027-01-01", "2027-01-18", "2027-02-15", "2027-03-26", "2027-05-31",
	"2027-06-18", "2027-07-05", "2027-09-06", "2027-11-25", "2027-12-24",
}

// TARGET2 closing days, 2024 through 2027. Only the fixed and Easter-derived
// closures; TARGET has no other holidays.
var targetHolidayList = []string{
	"2024-01-01", "2024-03-29", "2024-04-01", "2024-05-01", "2024-12-25", "2024-12-26",
	"2025-01-01", "2025-04-18", "2025-04-21", "2025-05-01", "2025-12-25", "2025-12-26",
	"2026-01-01", "2026-04-03", "2026-04-06", "2026-05-01", "2026-12-25",
	"2027-01-01", "2027-03-26", "2027-03-29", "2027-12-27",
}
