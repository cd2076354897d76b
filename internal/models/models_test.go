package models

import "testing"

func TestNewEmployee_Defaults(t *testing.T) {
	e := NewEmployee("Maria Souza", 3000, "", "maria@mail.com")

	if e.ID == "" {
		t.Fatal("id deve ser gerado na construção")
	}
	if e.CreatedAt.IsZero() {
		t.Fatal("created_at deve ser capturado na construção")
	}
	if e.FoodBasketValue != DefaultFoodBasketValue {
		t.Fatalf("food_basket_value=%v want=%v", e.FoodBasketValue, DefaultFoodBasketValue)
	}
	if e.FirstHalfHours != 0 || e.SecondHalfHours != 0 || e.FirstHalfAdvance != 0 || e.SecondHalfAbsence != 0 {
		t.Fatalf("campos de cálculo começam zerados: %#v", e)
	}

	if other := NewEmployee("João Lima", 2500, "", ""); other.ID == e.ID {
		t.Fatal("ids devem ser únicos entre funcionários")
	}
}

func TestNewSectorData(t *testing.T) {
	s := NewSectorData("Setor 1", 120, "2024-01-10")

	if s.ID == "" || s.CreatedAt.IsZero() {
		t.Fatalf("id e created_at gerados na construção: %#v", s)
	}
	if s.SectorName != "Setor 1" || s.DailyQuantity != 120 || s.Date != "2024-01-10" {
		t.Fatalf("campos do chamador preservados: %#v", s)
	}
}
