package models

import (
	"time"

	"github.com/google/uuid"
)

// SectorData é um lançamento diário de produção por setor. Append-only:
// não existe update nem delete de lançamento.
type SectorData struct {
	ID            string    `bson:"_id" json:"id"`
	SectorName    string    `bson:"sector_name" json:"sector_name"` // texto livre ("Setor 1", "Setor 2", ...)
	DailyQuantity float64   `bson:"daily_quantity" json:"daily_quantity"`
	Date          string    `bson:"date" json:"date"` // string do cliente, sem validação de formato
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

func NewSectorData(sectorName string, dailyQuantity float64, date string) *SectorData {
	return &SectorData{
		ID:            uuid.NewString(),
		SectorName:    sectorName,
		DailyQuantity: dailyQuantity,
		Date:          date,
		CreatedAt:     time.Now().UTC(),
	}
}
