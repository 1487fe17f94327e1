package extract

// Record is one charge session extracted from a single screenshot. Every
// field is a string; an empty string means the value was not found in the
// OCR text. A fully empty record is a valid output.
type Record struct {
	Date            string // ISO YYYY-MM-DD
	ChargerName     string
	ChargerLocation string
	DurationMinutes string // integer minutes
	KWHAdded        string
	ChargerKWRating string
	ChargePercent   string
	ChargeMiles     string
	StartTime       string // HH:MM, 24-hour
	EndTime         string
	StartPercent    string
	EndPercent      string
	Cost            string // raw currency string including the $
	ChargerBrand    string
}

// Columns is the fixed, ordered CSV column schema for Record.
var Columns = []string{
	"date",
	"charger_name",
	"charger_location",
	"duration_minutes",
	"kwh_added",
	"charger_kw_rating",
	"charge_percentage",
	"charge_miles",
	"start_time",
	"end_time",
	"start_percentage",
	"end_percentage",
	"cost",
	"charger_brand",
}

// Values returns the record's fields in Columns order.
func (r Record) Values() []string {
	return []string{
		r.Date,
		r.ChargerName,
		r.ChargerLocation,
		r.DurationMinutes,
		r.KWHAdded,
		r.ChargerKWRating,
		r.ChargePercent,
		r.ChargeMiles,
		r.StartTime,
		r.EndTime,
		r.StartPercent,
		r.EndPercent,
		r.Cost,
		r.ChargerBrand,
	}
}

// FromRow builds a Record from a column-name-to-value mapping. Unknown keys
// are ignored; missing keys stay empty.
func FromRow(row map[string]string) Record {
	return Record{
		Date:            row["date"],
		ChargerName:     row["charger_name"],
		ChargerLocation: row["charger_location"],
		DurationMinutes: row["duration_minutes"],
		KWHAdded:        row["kwh_added"],
		ChargerKWRating: row["charger_kw_rating"],
		ChargePercent:   row["charge_percentage"],
		ChargeMiles:     row["charge_miles"],
		StartTime:       row["start_time"],
		EndTime:         row["end_time"],
		StartPercent:    row["start_percentage"],
		EndPercent:      row["end_percentage"],
		Cost:            row["cost"],
		ChargerBrand:    row["charger_brand"],
	}
}

// SessionKey identifies a real-world charging session. Two records sharing
// all three fields are treated as duplicates of the same session.
type SessionKey struct {
	Date      string
	Location  string
	StartTime string
}

// Key returns the record's dedup key.
func (r Record) Key() SessionKey {
	return SessionKey{Date: r.Date, Location: r.ChargerLocation, StartTime: r.StartTime}
}
