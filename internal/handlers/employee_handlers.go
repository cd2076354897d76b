package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rafaei312654/Devinillibackend2/internal/auth"
	"github.com/rafaei312654/Devinillibackend2/internal/events"
	"github.com/rafaei312654/Devinillibackend2/internal/models"
	"github.com/rafaei312654/Devinillibackend2/internal/payroll"
	"github.com/rafaei312654/Devinillibackend2/internal/repository"
	"github.com/rafaei312654/Devinillibackend2/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	msgWrongPassword    = "Senha incorreta"
	msgEmployeeNotFound = "Funcionário não encontrado"
	msgInvalidPeriod    = "Período inválido. Use 'first' ou 'second'"
)

type EmployeeRepo interface {
	GetAll(ctx context.Context) ([]models.Employee, error)
	Create(ctx context.Context, e *models.Employee) (string, error)
	GetByID(ctx context.Context, id string) (*models.Employee, error)
	SetFields(ctx context.Context, id string, set bson.M) error
	Delete(ctx context.Context, id string) error
}

type SectorRepo interface {
	ListByName(ctx context.Context, sectorName string) ([]models.SectorData, error)
	Append(ctx context.Context, s *models.SectorData) (string, error)
}

// Publisher é opcional: com broker fora do ar a API sobe sem ele e as
// operações seguem funcionando, só sem feed ao vivo.
type Publisher interface {
	Publish(ctx context.Context, ev events.Event) error
	Close() error
}

type Handler struct {
	Employees EmployeeRepo
	Sectors   SectorRepo
	Gate      *auth.Gate
	Pub       Publisher
}

func New(employees EmployeeRepo, sectors SectorRepo, gate *auth.Gate, pub Publisher) *Handler {
	return &Handler{Employees: employees, Sectors: sectors, Gate: gate, Pub: pub}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /api/employees
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	list, err := h.Employees.GetAll(ctx)
	if err != nil {
		utils.WriteDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// POST /api/employees
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var dto EmployeeCreateDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}
	if !h.Gate.Check(dto.Password) {
		utils.WriteDetail(w, http.StatusForbidden, msgWrongPassword)
		return
	}
	if dto.FullName == "" {
		utils.BadRequest(w, "full_name is required")
		return
	}

	e := models.NewEmployee(dto.FullName, dto.GrossSalary, dto.Photo, dto.PixKey)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := h.Employees.Create(ctx, e); err != nil {
		utils.WriteDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.publishEvent("employee_created", "employee", e.ID, fmt.Sprintf("Cadastro de FUNCIONÁRIO %s", e.FullName))
	utils.WriteJSON(w, http.StatusOK, e)
}

// GET /api/employees/{id}
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	e, err := h.Employees.GetByID(ctx, id)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, e)
}

// PUT /api/employees/{id}/salary
func (h *Handler) UpdateSalary(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var dto EmployeeUpdateDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}
	if !h.Gate.Check(dto.Password) {
		utils.WriteDetail(w, http.StatusForbidden, msgWrongPassword)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	e, err := h.Employees.GetByID(ctx, id)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}

	// valor omitido é no-op que ainda reporta sucesso
	set := bson.M{}
	if dto.GrossSalary != nil {
		set["gross_salary"] = *dto.GrossSalary
	}
	if err := h.Employees.SetFields(ctx, id, set); err != nil {
		h.writeRepoError(w, err)
		return
	}

	h.publishEvent("salary_updated", "employee", id, fmt.Sprintf("Salário de %s atualizado", e.FullName))
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Salário atualizado com sucesso"})
}

// PUT /api/employees/{id}/pix
func (h *Handler) UpdatePix(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var dto EmployeeUpdateDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}
	if !h.Gate.Check(dto.Password) {
		utils.WriteDetail(w, http.StatusForbidden, msgWrongPassword)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	e, err := h.Employees.GetByID(ctx, id)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}

	set := bson.M{}
	if dto.PixKey != nil {
		set["pix_key"] = *dto.PixKey
	}
	if err := h.Employees.SetFields(ctx, id, set); err != nil {
		h.writeRepoError(w, err)
		return
	}

	h.publishEvent("pix_updated", "employee", id, fmt.Sprintf("Chave PIX de %s atualizada", e.FullName))
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Chave PIX atualizada com sucesso"})
}

// DELETE /api/employees/{id}
func (h *Handler) FireEmployee(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var dto PasswordDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}
	if !h.Gate.Check(dto.Password) {
		utils.WriteDetail(w, http.StatusForbidden, msgWrongPassword)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	e, err := h.Employees.GetByID(ctx, id)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}

	if err := h.Employees.Delete(ctx, id); err != nil {
		h.writeRepoError(w, err)
		return
	}

	h.publishEvent("employee_fired", "employee", id, fmt.Sprintf("Demissão de FUNCIONÁRIO %s", e.FullName))
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Funcionário demitido com sucesso"})
}

// PUT /api/employees/{id}/calculations — sem senha, por contrato histórico.
func (h *Handler) UpdateCalculations(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var dto CalculationsDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Employees.GetByID(ctx, id); err != nil {
		h.writeRepoError(w, err)
		return
	}

	set := bson.M{}
	if dto.FirstHalfHours != nil {
		set["first_half_hours"] = *dto.FirstHalfHours
	}
	if dto.SecondHalfHours != nil {
		set["second_half_hours"] = *dto.SecondHalfHours
	}
	if dto.FirstHalfAdvance != nil {
		set["first_half_advance"] = *dto.FirstHalfAdvance
	}
	if dto.SecondHalfAbsence != nil {
		set["second_half_absences"] = *dto.SecondHalfAbsence
	}
	if dto.FoodBasketValue != nil {
		set["food_basket_value"] = *dto.FoodBasketValue
	}

	if err := h.Employees.SetFields(ctx, id, set); err != nil {
		h.writeRepoError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Dados de cálculo atualizados com sucesso"})
}

// GET /api/employees/{id}/payroll/{period}
func (h *Handler) CalculatePayroll(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	period := r.PathValue("period")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	e, err := h.Employees.GetByID(ctx, id)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}

	st, err := payroll.Calculate(e, period)
	if err != nil {
		if errors.Is(err, payroll.ErrInvalidPeriod) {
			utils.BadRequest(w, msgInvalidPeriod)
			return
		}
		utils.WriteDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, st)
}

// POST /api/validate-password
func (h *Handler) ValidatePassword(w http.ResponseWriter, r *http.Request) {
	var dto PasswordDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}
	if !h.Gate.Check(dto.Password) {
		utils.WriteDetail(w, http.StatusForbidden, msgWrongPassword)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Senha válida"})
}

func (h *Handler) writeRepoError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		utils.WriteDetail(w, http.StatusNotFound, msgEmployeeNotFound)
		return
	}
	utils.WriteDetail(w, http.StatusInternalServerError, err.Error())
}

func (h *Handler) publishEvent(action, entity, entityID, detail string) {
	if h.Pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ev := events.Event{Action: action, Entity: entity, EntityID: entityID, Detail: detail}
	if err := h.Pub.Publish(ctx, ev); err != nil {
		slog.Warn("event_publish_failed", "action", action, "err", err)
	}
}
