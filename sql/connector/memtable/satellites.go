package memtable

import "github.com/vectorsql/engine/sql"

type satelliteRow struct {
	id            int64
	planetID      int64
	name          string
	gm            float64 // km^3/s^2
	radiusKm      float64
	densityGcm3   float64
}

// satelliteRows is a representative subset of named solar-system moons
// (Earth's Moon through the major satellites of the outer planets), not
// an exhaustive catalogue — see DESIGN.md for why the row count was
// trimmed.
var satelliteRows = []satelliteRow{
	{1, 3, "Moon", 4902.8, 1737.4, 3.34},
	{2, 4, "Phobos", 0.0007, 11.1, 1.87},
	{3, 4, "Deimos", 0.0001, 6.2, 1.47},
	{4, 5, "Io", 5959.9, 1821.6, 3.53},
	{5, 5, "Europa", 3202.7, 1560.8, 3.01},
	{6, 5, "Ganymede", 9887.8, 2634.1, 1.94},
	{7, 5, "Callisto", 7179.3, 2410.3, 1.83},
	{8, 6, "Mimas", 2.5, 198.2, 1.15},
	{9, 6, "Enceladus", 7.2, 252.1, 1.61},
	{10, 6, "Tethys", 41.2, 531.1, 0.98},
	{11, 6, "Dione", 73.1, 561.4, 1.48},
	{12, 6, "Rhea", 153.9, 763.8, 1.24},
	{13, 6, "Titan", 8978.1, 2574.7, 1.88},
	{14, 6, "Iapetus", 120.5, 734.5, 1.09},
	{15, 7, "Miranda", 4.4, 235.8, 1.2},
	{16, 7, "Ariel", 86.4, 578.9, 1.59},
	{17, 7, "Umbriel", 81.5, 584.7, 1.39},
	{18, 7, "Titania", 228.2, 788.9, 1.71},
	{19, 7, "Oberon", 192.4, 761.4, 1.63},
	{20, 8, "Triton", 1427.6, 1353.4, 2.06},
	{21, 8, "Nereid", 2.1, 170, 1.5},
	{22, 9, "Charon", 102.3, 606, 1.7},
}

// NewSatellites returns the built-in `$satellites` dataset, with
// planet_id foreign-keying into `$planets`.id for join scenarios.
func NewSatellites() *Table {
	schema := sql.NewRelationSchema("$satellites")
	cols := []struct {
		name string
		typ  sql.Type
	}{
		{"id", sql.Int64},
		{"planet_id", sql.Int64},
		{"name", sql.Varchar},
		{"gm", sql.Float64},
		{"radius_km", sql.Float64},
		{"density_gcm3", sql.Float64},
	}
	identities := make([]string, len(cols))
	for i, c := range cols {
		fc := sql.NewFlatColumn(c.name, c.typ, "$satellites")
		schema.Append(fc.Column)
		identities[i] = fc.Identity
	}

	id := make([]interface{}, len(satelliteRows))
	planetID := make([]interface{}, len(satelliteRows))
	name := make([]interface{}, len(satelliteRows))
	gm := make([]interface{}, len(satelliteRows))
	radius := make([]interface{}, len(satelliteRows))
	density := make([]interface{}, len(satelliteRows))
	for i, r := range satelliteRows {
		id[i] = r.id
		planetID[i] = r.planetID
		name[i] = r.name
		gm[i] = r.gm
		radius[i] = r.radiusKm
		density[i] = r.densityGcm3
	}

	columns := []sql.Vector{
		{Identity: identities[0], Name: "id", Type: sql.Int64, Values: id},
		{Identity: identities[1], Name: "planet_id", Type: sql.Int64, Values: planetID},
		{Identity: identities[2], Name: "name", Type: sql.Varchar, Values: name},
		{Identity: identities[3], Name: "gm", Type: sql.Float64, Values: gm},
		{Identity: identities[4], Name: "radius_km", Type: sql.Float64, Values: radius},
		{Identity: identities[5], Name: "density_gcm3", Type: sql.Float64, Values: density},
	}
	return New("$satellites", schema, columns)
}
