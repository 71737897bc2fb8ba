package calendar

// Japanese national holidays. Needs a yearly update; extra dates can be
// supplied through HOLIDAYS_FILE_PATH without a rebuild.
var builtinHolidays = []Holiday{
	// 2024
	{Name: "New Year's Day", Date: "2024-01-01"},
	{Name: "Coming of Age Day", Date: "2024-01-08"},
	{Name: "National Foundation Day", Date: "2024-02-11"},
	{Name: "National Foundation Day (observed)", Date: "2024-02-12"},
	{Name: "Emperor's Birthday", Date: "2024-02-23"},
	{Name: "Vernal Equinox Day", Date: "2024-03-20"},
	{Name: "Showa Day", Date: "2024-04-29"},
	{Name: "Constitution Memorial Day", Date: "2024-05-03"},
	{Name: "Greenery Day", Date: "2024-05-04"},
	{Name: "Children's Day", Date: "2024-05-05"},
	{Name: "Children's Day (observed)", Date: "2024-05-06"},
	{Name: "Marine Day", Date: "2024-07-15"},
	{Name: "Mountain Day", Date: "2024-08-11"},
	{Name: "Mountain Day (observed)", Date: "2024-08-12"},
	{Name: "Respect for the Aged Day", Date: "2024-09-16"},
	{Name: "Autumnal Equinox Day", Date: "2024-09-22"},
	{Name: "Autumnal Equinox Day (observed)", Date: "2024-09-23"},
	{Name: "Sports Day", Date: "2024-10-14"},
	{Name: "Culture Day", Date: "2024-11-03"},
	{Name: "Culture Day (observed)", Date: "2024-11-04"},
	{Name: "Labor Thanksgiving Day", Date: "2024-11-23"},

	// 2025
	{Name: "New Year's Day", Date: "2025-01-01"},
	{Name: "Coming of Age Day", Date: "2025-01-13"},
	{Name: "National Foundation Day", Date: "2025-02-11"},
	{Name: "Emperor's Birthday", Date: "2025-02-23"},
	{Name: "Emperor's Birthday (observed)", Date: "2025-02-24"},
	{Name: "Vernal Equinox Day", Date: "2025-03-20"},
	{Name: "Showa Day", Date: "2025-04-29"},
	{Name: "Constitution Memorial Day", Date: "2025-05-03"},
	{Name: "Greenery Day", Date: "2025-05-04"},
	{Name: "Children's Day", Date: "2025-05-05"},
	{Name: "Children's Day (observed)", Date: "2025-05-06"},
	{Name: "Marine Day", Date: "2025-07-21"},
	{Name: "Mountain Day", Date: "2025-08-11"},
	{Name: "Respect for the Aged Day", Date: "2025-09-15"},
	{Name: "Autumnal Equinox Day", Date: "2025-09-23"},
	{Name: "Sports Day", Date: "2025-10-13"},
	{Name: "Culture Day", Date: "2025-11-03"},
	{Name: "Labor Thanksgiving Day", Date: "2025-11-23"},
	{Name: "Labor Thanksgiving Day (observed)", Date: "2025-11-24"},

	// 2026
	{Name: "New Year's Day", Date: "2026-01-01"},
	{Name: "Coming of Age Day", Date: "2026-01-12"},
	{Name: "National Foundation Day", Date: "2026-02-11"},
	{Name: "Emperor's Birthday", Date: "2026-02-23"},
	{Name: "Vernal Equinox Day", Date: "2026-03-20"},
	{Name: "Showa Day", Date: "2026-04-29"},
	{Name: "Constitution Memorial Day", Date: "2026-05-03"},
	{Name: "Greenery Day", Date: "2026-05-04"},
	{Name: "Children's Day", Date: "2026-05-05"},
	{Name: "Constitution Memorial Day (observed)", Date: "2026-05-06"},
	{Name: "Marine Day", Date: "2026-07-20"},
	{Name: "Mountain Day", Date: "2026-08-11"},
	{Name: "Respect for the Aged Day", Date: "2026-09-21"},
	{Name: "Citizens' Holiday", Date: "2026-09-22"},
	{Name: "Autumnal Equinox Day", Date: "2026-09-23"},
	{Name: "Sports Day", Date: "2026-10-12"},
	{Name: "Culture Day", Date: "2026-11-03"},
	{Name: "Labor Thanksgiving Day", Date: "2026-11-23"},
}
