package models

// Building represents a row of the buildings table.
type Building struct {
	BuildingID    string `db:"building_id"`
	Name          string `db:"name"`
	Address       string `db:"address"`
	Capacity      int    `db:"capacity"`
	OccupiedCount int    `db:"occupied_count"`
	VacantCount   int    `db:"vacant_count"`
	HouseCount    int    `db:"house_count"`
	AuditFields
}
