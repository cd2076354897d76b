package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rafaei312654/Devinillibackend2/internal/models"
	"github.com/rafaei312654/Devinillibackend2/internal/utils"
)

// GET /api/sectors/{name}/data
func (h *Handler) ListSectorData(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	list, err := h.Sectors.ListByName(ctx, name)
	if err != nil {
		utils.WriteDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// POST /api/sectors/{name}/update
func (h *Handler) AppendSectorData(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var dto SectorUpdateDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}
	if !h.Gate.Check(dto.Password) {
		utils.WriteDetail(w, http.StatusForbidden, msgWrongPassword)
		return
	}

	s := models.NewSectorData(name, dto.DailyQuantity, dto.Date)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := h.Sectors.Append(ctx, s); err != nil {
		utils.WriteDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.publishEvent("sector_entry_added", "sector", s.ID,
		fmt.Sprintf("Lançamento de %s em %s: %v", name, dto.Date, dto.DailyQuantity))
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Dados do setor atualizados com sucesso"})
}
