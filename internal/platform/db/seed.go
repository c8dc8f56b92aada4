package db

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

// SeedEmployee is one [[employee]] table of a seed file.
type SeedEmployee struct {
	ID           string `toml:"id"`
	Name         string `toml:"name"`
	HourlyRate   string `toml:"hourly_rate"`
	Status       string `toml:"status"`
	Compensation string `toml:"compensation"`
}

type seedFile struct {
	Employees []SeedEmployee `toml:"employee"`
}

// ParseSeedFile decodes employee rows, filling status and compensation
// defaults. Hourly employees need a rate.
func ParseSeedFile(data string) ([]SeedEmployee, error) {
	var file seedFile
	if _, err := toml.Decode(data, &file); err != nil {
		return nil, err
	}
	for i := range file.Employees {
		e := &file.Employees[i]
		e.ID = strings.TrimSpace(e.ID)
		if e.ID == "" || strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("employee %d: id and name are required", i+1)
		}
		if e.Status == "" {
			e.Status = "active"
		}
		if e.Compensation == "" {
			e.Compensation = "hourly"
		}
		if e.HourlyRate != "" {
			if _, err := decimal.NewFromString(e.HourlyRate); err != nil {
				return nil, fmt.Errorf("employee %s: invalid hourly_rate: %w", e.ID, err)
			}
		} else if e.Compensation == "hourly" {
			return nil, fmt.Errorf("employee %s: hourly_rate is required for hourly staff", e.ID)
		}
	}
	return file.Employees, nil
}

// SeedEmployees upserts the employees listed in the TOML file at path.
func SeedEmployees(ctx context.Context, q Querier, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	employees, err := ParseSeedFile(string(data))
	if err != nil {
		return 0, fmt.Errorf("seed %s: %w", path, err)
	}
	if err := UpsertEmployees(ctx, q, employees); err != nil {
		return 0, err
	}
	return len(employees), nil
}

// UpsertEmployees writes validated seed rows, replacing existing ones by id.
func UpsertEmployees(ctx context.Context, q Querier, employees []SeedEmployee) error {
	for _, e := range employees {
		var rate *decimal.Decimal
		if e.HourlyRate != "" {
			value, err := decimal.NewFromString(e.HourlyRate)
			if err != nil {
				return fmt.Errorf("employee %s: invalid hourly_rate: %w", e.ID, err)
			}
			rate = &value
		}
		if _, err := q.Exec(ctx, `
      INSERT INTO employees (id, name, hourly_rate, employment_status, compensation_type)
      VALUES ($1,$2,$3,$4,$5)
      ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, hourly_rate = EXCLUDED.hourly_rate,
        employment_status = EXCLUDED.employment_status, compensation_type = EXCLUDED.compensation_type
    `, e.ID, e.Name, rate, e.Status, e.Compensation); err != nil {
			return fmt.Errorf("seed employee %s: %w", e.ID, err)
		}
	}
	return nil
}
