package repositories

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	intdb "raildesk/internal/db"
)

// Connection is one searchable timetable entry. BasePrice is the per-adult
// one-way fare the wizard feeds into the draft.
type Connection struct {
	FromStation   string  `json:"fromStation"`
	ToStation     string  `json:"toStation"`
	ViaStation    string  `json:"viaStation,omitempty"`
	DepartureDate string  `json:"departureDate"`
	DepartureTime string  `json:"departureTime"`
	TrainNumber   string  `json:"trainNumber"`
	BasePrice     float64 `json:"basePrice"`
}

// ConnectionRepository serves the international timetable. It reads the
// `connections` table when the schema exists and falls back to the seeded
// timetable otherwise, so the desk keeps working without MySQL.
type ConnectionRepository struct {
	DB *sql.DB
}

// seedTimetable lists daily services; the requested travel date is stamped
// onto the results at search time.
var seedTimetable = []Connection{
	{FromStation: "Kyiv", ToStation: "Warsaw", DepartureTime: "06:45", TrainNumber: "IC 705", BasePrice: 30},
	{FromStation: "Kyiv", ToStation: "Warsaw", ViaStation: "Chelm", DepartureTime: "16:20", TrainNumber: "EN 407", BasePrice: 42.5},
	{FromStation: "Kyiv", ToStation: "Vienna", ViaStation: "Budapest", DepartureTime: "18:10", TrainNumber: "EN 53", BasePrice: 89.9},
	{FromStation: "Kyiv", ToStation: "Chisinau", DepartureTime: "17:25", TrainNumber: "D 351", BasePrice: 22.5},
	{FromStation: "Warsaw", ToStation: "Prague", DepartureTime: "08:15", TrainNumber: "EC 115", BasePrice: 35},
	{FromStation: "Warsaw", ToStation: "Vilnius", DepartureTime: "09:05", TrainNumber: "IC 131", BasePrice: 25},
	{FromStation: "Prague", ToStation: "Berlin", DepartureTime: "10:30", TrainNumber: "EC 178", BasePrice: 27.9},
	{FromStation: "Vienna", ToStation: "Budapest", DepartureTime: "07:40", TrainNumber: "RJX 62", BasePrice: 19.9},
}

// Search returns direct connections between two stations on a date,
// earliest departure first.
func (r ConnectionRepository) Search(from, to, date string) ([]Connection, error) {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	date = strings.TrimSpace(date)

	if r.DB != nil && intdb.HasTable(r.DB, "connections") {
		return r.searchDB(from, to, date)
	}
	return searchSeed(from, to, date), nil
}

func (r ConnectionRepository) searchDB(from, to, date string) ([]Connection, error) {
	// via_station is optional in older timetable schemas
	viaSel := "''"
	if intdb.HasColumn(r.DB, "connections", "via_station") {
		viaSel = "COALESCE(via_station, '')"
	}

	query := fmt.Sprintf(`
		SELECT
			COALESCE(from_station, ''),
			COALESCE(to_station, ''),
			%s,
			COALESCE(departure_date, ''),
			COALESCE(departure_time, ''),
			COALESCE(train_number, ''),
			COALESCE(base_price, 0)
		FROM connections
		WHERE LOWER(from_station) = LOWER(?)
		  AND LOWER(to_station) = LOWER(?)
		  AND (departure_date = ? OR departure_date = '')
		ORDER BY departure_time ASC
	`, viaSel)

	rows, err := r.DB.Query(query, from, to, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Connection{}
	for rows.Next() {
		var c Connection
		if err := rows.Scan(
			&c.FromStation,
			&c.ToStation,
			&c.ViaStation,
			&c.DepartureDate,
			&c.DepartureTime,
			&c.TrainNumber,
			&c.BasePrice,
		); err != nil {
			return nil, err
		}
		if c.DepartureDate == "" {
			c.DepartureDate = date
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func searchSeed(from, to, date string) []Connection {
	out := []Connection{}
	for _, c := range seedTimetable {
		if strings.EqualFold(c.FromStation, from) && strings.EqualFold(c.ToStation, to) {
			c.DepartureDate = date
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DepartureTime < out[j].DepartureTime })
	return out
}

// FilterByMaxPrice keeps connections whose per-adult fare does not exceed
// max. Used by the search endpoint's optional maxPrice filter.
func FilterByMaxPrice(conns []Connection, max float64) []Connection {
	out := []Connection{}
	for _, c := range conns {
		if c.BasePrice <= max {
			out = append(out, c)
		}
	}
	return out
}

// Stations lists every station the timetable knows, sorted. Used by the
// search form's autocomplete.
func (r ConnectionRepository) Stations() ([]string, error) {
	seen := map[string]bool{}
	out := []string{}
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || seen[strings.ToLower(name)] {
			return
		}
		seen[strings.ToLower(name)] = true
		out = append(out, name)
	}

	if r.DB != nil && intdb.HasTable(r.DB, "connections") {
		rows, err := r.DB.Query(`
			SELECT DISTINCT from_station FROM connections
			UNION
			SELECT DISTINCT to_station FROM connections
		`)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				return nil, err
			}
			add(name)
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
	} else {
		for _, c := range seedTimetable {
			add(c.FromStation)
			add(c.ToStation)
		}
	}

	sort.Strings(out)
	return out, nil
}
