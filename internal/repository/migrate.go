package repository

import (
	"gorm.io/gorm"
)

// Migrate creates the schema. On postgres it also installs the
// idx_no_overbooking exclusion constraint so the no-overlap invariant holds
// across processes; sqlite deployments are single-process and rely on the
// engine's per-room serialization.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel{},
		&roomModel{},
		&bookingModel{},
		&sessionModel{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}
	if err := db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS idx_no_overbooking`).Error; err != nil {
		return err
	}
	return db.Exec(`
ALTER TABLE bookings ADD CONSTRAINT idx_no_overbooking
EXCLUDE USING gist (room_id WITH =, tstzrange(check_in, check_out, '[)') WITH &&)
`).Error
}
