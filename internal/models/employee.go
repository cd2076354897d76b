package models

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID                string    `bson:"_id" json:"id"`
	FullName          string    `bson:"full_name" json:"full_name"`
	GrossSalary       float64   `bson:"gross_salary" json:"gross_salary"`
	Photo             string    `bson:"photo,omitempty" json:"photo,omitempty"` // imagem em base64, opaca para o sistema
	PixKey            string    `bson:"pix_key,omitempty" json:"pix_key,omitempty"`
	FirstHalfHours    float64   `bson:"first_half_hours" json:"first_half_hours"`
	SecondHalfHours   float64   `bson:"second_half_hours" json:"second_half_hours"`
	FirstHalfAdvance  float64   `bson:"first_half_advance" json:"first_half_advance"`
	SecondHalfAbsence int       `bson:"second_half_absences" json:"second_half_absences"`
	FoodBasketValue   float64   `bson:"food_basket_value" json:"food_basket_value"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
}

const DefaultFoodBasketValue = 50.0

// NewEmployee sempre gera id e created_at no servidor, nunca vindos do cliente.
func NewEmployee(fullName string, grossSalary float64, photo, pixKey string) *Employee {
	return &Employee{
		ID:              uuid.NewString(),
		FullName:        fullName,
		GrossSalary:     grossSalary,
		Photo:           photo,
		PixKey:          pixKey,
		FoodBasketValue: DefaultFoodBasketValue,
		CreatedAt:       time.Now().UTC(),
	}
}
