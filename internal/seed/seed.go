// AngelaMos | 2026
// seed.go

package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/traffic-registry/internal/core"
)

type demoDriver struct {
	FullName      string `db:"full_name"`
	LicenseNumber string `db:"license_number"`
	Address       string `db:"address"`
	Phone         string `db:"phone"`
}

type demoVehicle struct {
	LicensePlate string `db:"license_plate"`
	Brand        string `db:"brand"`
	Model        string `db:"model"`
	Year         int    `db:"year"`
	OwnerID      int64  `db:"owner_id"`
}

var drivers = []demoDriver{
	{"Иванов Иван Иванович", "АВ123456", "г. Москва, ул. Ленина, 1", "+79161234567"},
	{"Петров Петр Петрович", "ВС654321", "г. Москва, ул. Пушкина, 10", "+79167654321"},
}

var vehicles = []struct {
	plate, brand, model string
	year                int
	owner               int
}{
	{"А123БВ77", "Lada", "Vesta", 2020, 0},
	{"В456СЕ77", "Kia", "Rio", 2021, 1},
}

// DemoData fills an empty registry with two drivers and their vehicles.
// It does nothing once any driver exists.
func DemoData(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM drivers`); err != nil {
		return fmt.Errorf("seed: count drivers: %w", err)
	}
	if count > 0 {
		return nil
	}

	err := core.InTx(ctx, db, func(tx *sqlx.Tx) error {
		ids := make([]int64, 0, len(drivers))

		for _, d := range drivers {
			var id int64
			err := tx.GetContext(ctx, &id, `
				INSERT INTO drivers (full_name, license_number, address, phone)
				VALUES ($1, $2, $3, $4)
				RETURNING id`,
				d.FullName, d.LicenseNumber, d.Address, d.Phone,
			)
			if err != nil {
				return fmt.Errorf("insert driver %s: %w", d.LicenseNumber, err)
			}
			ids = append(ids, id)
		}

		for _, v := range vehicles {
			row := demoVehicle{
				LicensePlate: v.plate,
				Brand:        v.brand,
				Model:        v.model,
				Year:         v.year,
				OwnerID:      ids[v.owner],
			}
			_, err := tx.NamedExecContext(ctx, `
				INSERT INTO vehicles (license_plate, brand, model, year, owner_id)
				VALUES (:license_plate, :brand, :model, :year, :owner_id)`,
				row,
			)
			if err != nil {
				return fmt.Errorf("insert vehicle %s: %w", v.plate, err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	slog.InfoContext(ctx, "demo data seeded",
		"drivers", len(drivers),
		"vehicles", len(vehicles),
	)
	return nil
}
