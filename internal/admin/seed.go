package admin

import (
	"context"
	_ "embed"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/rafaei312654/Devinillibackend2/internal/models"
	"github.com/rafaei312654/Devinillibackend2/internal/repository"
)

//go:embed seeds/employees.json
var employeesJSON []byte

//go:embed seeds/sector_data.json
var sectorDataJSON []byte

type employeeSeed struct {
	FullName        string  `json:"full_name"`
	GrossSalary     float64 `json:"gross_salary"`
	PixKey          string  `json:"pix_key"`
	FoodBasketValue float64 `json:"food_basket_value"`
}

type sectorSeed struct {
	SectorName    string  `json:"sector_name"`
	DailyQuantity float64 `json:"daily_quantity"`
	Date          string  `json:"date"`
}

// SeedEmployees insere os funcionários de exemplo. Idempotente no nível
// da coleção: se já existe qualquer documento, não insere nada.
func SeedEmployees(ctx context.Context, repo *repository.EmployeeRepository, log *slog.Logger) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info("seed_employees_skip", "existing", n)
		return nil
	}

	var items []employeeSeed
	if err := json.Unmarshal(employeesJSON, &items); err != nil {
		return err
	}

	for _, s := range items {
		e := models.NewEmployee(s.FullName, s.GrossSalary, "", s.PixKey)
		if s.FoodBasketValue > 0 {
			e.FoodBasketValue = s.FoodBasketValue
		}

		// timeout curto por item pra não travar
		ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
		_, err := repo.Create(ictx, e)
		cancel()
		if err != nil {
			return err
		}
		log.Info("seed_employee_created", "id", e.ID, "full_name", e.FullName)
	}

	log.Info("seed_employees_done", "count", len(items))
	return nil
}

// SeedSectorData insere os lançamentos de exemplo, mesma regra de
// idempotência do SeedEmployees.
func SeedSectorData(ctx context.Context, repo *repository.SectorRepository, log *slog.Logger) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info("seed_sector_data_skip", "existing", n)
		return nil
	}

	var items []sectorSeed
	if err := json.Unmarshal(sectorDataJSON, &items); err != nil {
		return err
	}

	for _, s := range items {
		entry := models.NewSectorData(s.SectorName, s.DailyQuantity, s.Date)

		ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
		_, err := repo.Append(ictx, entry)
		cancel()
		if err != nil {
			return err
		}
		log.Info("seed_sector_entry_created", "sector", s.SectorName, "date", s.Date)
	}

	log.Info("seed_sector_data_done", "count", len(items))
	return nil
}
