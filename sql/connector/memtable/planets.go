package memtable

import "github.com/vectorsql/engine/sql"

type planetRow struct {
	id              int64
	name            string
	massKg          float64
	diameterKm      float64
	meanDistanceKm  float64
	gravityMs2      float64
	orbitalPeriod   float64
	numberOfMoons   int64
	hasRings        bool
}

var planetRows = []planetRow{
	{1, "Mercury", 3.3011e23, 4879, 5.791e7, 3.7, 88, 0, false},
	{2, "Venus", 4.8675e24, 12104, 1.082e8, 8.87, 224.7, 0, false},
	{3, "Earth", 5.972e24, 12742, 1.496e8, 9.8, 365.2, 1, false},
	{4, "Mars", 6.4171e23, 6779, 2.279e8, 3.71, 687, 2, false},
	{5, "Jupiter", 1.8982e27, 139820, 7.785e8, 24.79, 4331, 95, true},
	{6, "Saturn", 5.6834e26, 116460, 1.434e9, 10.44, 10747, 146, true},
	{7, "Uranus", 8.681e25, 50724, 2.871e9, 8.69, 30589, 28, true},
	{8, "Neptune", 1.02413e26, 49244, 4.495e9, 11.15, 59800, 16, true},
	{9, "Pluto", 1.303e22, 2377, 5.906e9, 0.62, 90560, 5, false},
}

// NewPlanets returns the built-in `$planets` dataset: one row per body of
// the solar system's traditional nine-planet reckoning, matching
// dolthub/go-mysql-server's enginetest fixture tables in shape (a small,
// fully in-memory relation every engine-level test can join or aggregate
// against).
func NewPlanets() *Table {
	schema := sql.NewRelationSchema("$planets")
	cols := []struct {
		name string
		typ  sql.Type
	}{
		{"id", sql.Int64},
		{"name", sql.Varchar},
		{"mass_kg", sql.Float64},
		{"diameter_km", sql.Float64},
		{"mean_distance_km", sql.Float64},
		{"gravity_ms2", sql.Float64},
		{"orbital_period_days", sql.Float64},
		{"number_of_moons", sql.Int64},
		{"has_rings", sql.Boolean},
	}
	identities := make([]string, len(cols))
	for i, c := range cols {
		fc := sql.NewFlatColumn(c.name, c.typ, "$planets")
		schema.Append(fc.Column)
		identities[i] = fc.Identity
	}

	id := make([]interface{}, len(planetRows))
	name := make([]interface{}, len(planetRows))
	mass := make([]interface{}, len(planetRows))
	diameter := make([]interface{}, len(planetRows))
	distance := make([]interface{}, len(planetRows))
	gravity := make([]interface{}, len(planetRows))
	period := make([]interface{}, len(planetRows))
	moons := make([]interface{}, len(planetRows))
	rings := make([]interface{}, len(planetRows))
	for i, r := range planetRows {
		id[i] = r.id
		name[i] = r.name
		mass[i] = r.massKg
		diameter[i] = r.diameterKm
		distance[i] = r.meanDistanceKm
		gravity[i] = r.gravityMs2
		period[i] = r.orbitalPeriod
		moons[i] = r.numberOfMoons
		rings[i] = r.hasRings
	}

	columns := []sql.Vector{
		{Identity: identities[0], Name: "id", Type: sql.Int64, Values: id},
		{Identity: identities[1], Name: "name", Type: sql.Varchar, Values: name},
		{Identity: identities[2], Name: "mass_kg", Type: sql.Float64, Values: mass},
		{Identity: identities[3], Name: "diameter_km", Type: sql.Float64, Values: diameter},
		{Identity: identities[4], Name: "mean_distance_km", Type: sql.Float64, Values: distance},
		{Identity: identities[5], Name: "gravity_ms2", Type: sql.Float64, Values: gravity},
		{Identity: identities[6], Name: "orbital_period_days", Type: sql.Float64, Values: period},
		{Identity: identities[7], Name: "number_of_moons", Type: sql.Int64, Values: moons},
		{Identity: identities[8], Name: "has_rings", Type: sql.Boolean, Values: rings},
	}
	return New("$planets", schema, columns)
}
