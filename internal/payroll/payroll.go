// Package payroll calcula o pagamento quinzenal a partir dos campos
// armazenados do funcionário. Função pura: não persiste nada.
package payroll

import (
	"errors"
	"math"

	"github.com/rafaei312654/Devinillibackend2/internal/models"
)

const (
	PeriodFirst  = "first"
	PeriodSecond = "second"
)

var ErrInvalidPeriod = errors.New("invalid period")

type Statement struct {
	Period        string  `json:"period"`
	GrossSalary   float64 `json:"gross_salary"`
	HoursWorked   float64 `json:"hours_worked"`
	AdvanceValue  float64 `json:"advance_value"`
	Absences      int     `json:"absences"`
	DiscountValue float64 `json:"discount_value"`
	TotalToPay    float64 `json:"total_to_pay"`
}

// Calculate aplica a fórmula da quinzena pedida.
//
// Primeira quinzena: 40% do salário bruto, sem nenhum desconto (horas e
// vale são apenas informativos). Segunda quinzena: 60% do salário bruto
// menos o desconto por falta; cada falta custa 3 diárias (dia + fim de
// semana adjacente) mais o valor da cesta básica, e o total nunca fica
// negativo.
func Calculate(emp *models.Employee, period string) (*Statement, error) {
	switch period {
	case PeriodFirst:
		return &Statement{
			Period:        "Primeira Quinzena",
			GrossSalary:   emp.GrossSalary,
			HoursWorked:   emp.FirstHalfHours,
			AdvanceValue:  emp.FirstHalfAdvance,
			Absences:      0,
			DiscountValue: 0,
			TotalToPay:    emp.GrossSalary * 0.4,
		}, nil

	case PeriodSecond:
		base := emp.GrossSalary * 0.6
		dailySalary := emp.GrossSalary / 30
		perAbsence := dailySalary*3 + emp.FoodBasketValue
		discount := float64(emp.SecondHalfAbsence) * perAbsence

		return &Statement{
			Period:        "Segunda Quinzena",
			GrossSalary:   emp.GrossSalary,
			HoursWorked:   emp.SecondHalfHours,
			AdvanceValue:  0,
			Absences:      emp.SecondHalfAbsence,
			DiscountValue: discount,
			TotalToPay:    math.Max(0, base-discount),
		}, nil
	}
	return nil, ErrInvalidPeriod
}
