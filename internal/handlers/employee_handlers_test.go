package handlers

/*

go test -v ./internal/handlers -count=1

*/

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rafaei312654/Devinillibackend2/internal/auth"
	"github.com/rafaei312654/Devinillibackend2/internal/models"
	"github.com/rafaei312654/Devinillibackend2/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
)

const testPassword = "segredo-teste"
const employeeID = "8b1f2c4e-0000-0000-0000-000000000001"

func newHandler(er EmployeeRepo, sr SectorRepo, pub Publisher) *Handler {
	return New(er, sr, auth.NewGate(testPassword), pub)
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewBuffer(b)
}

// ---------- GET /api/employees

func TestListEmployees(t *testing.T) {
	rm := &employeeRepoMock{
		GetAllFn: func(_ context.Context) ([]models.Employee, error) {
			return []models.Employee{{ID: employeeID, FullName: "Maria Souza", GrossSalary: 3000}}, nil
		},
	}
	h := newHandler(rm, &sectorRepoMock{}, &pubMock{})

	req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
	rr := httptest.NewRecorder()
	h.ListEmployees(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want=%d body=%s", rr.Code, http.StatusOK, rr.Body.String())
	}
	var got []models.Employee
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v body=%s", err, rr.Body.String())
	}
	if len(got) != 1 || got[0].FullName != "Maria Souza" {
		t.Fatalf("unexpected payload: %#v", got)
	}
}

func TestListEmployees_RepoError(t *testing.T) {
	rm := &employeeRepoMock{
		GetAllFn: func(_ context.Context) ([]models.Employee, error) { return nil, errors.New("boom") },
	}
	h := newHandler(rm, &sectorRepoMock{}, &pubMock{})

	rr := httptest.NewRecorder()
	h.ListEmployees(rr, httptest.NewRequest(http.MethodGet, "/api/employees", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d want=%d", rr.Code, http.StatusInternalServerError)
	}
}

// ---------- POST /api/employees

func TestCreateEmployee_Valid(t *testing.T) {
	var created *models.Employee
	rm := &employeeRepoMock{
		CreateFn: func(_ context.Context, e *models.Employee) (string, error) {
			created = e
			return e.ID, nil
		},
	}
	h := newHandler(rm, &sectorRepoMock{}, &pubMock{})

	body := jsonBody(t, EmployeeCreateDTO{
		FullName:    "João Lima",
		GrossSalary: 2500,
		Password:    testPassword,
		PixKey:      "joao@mail.com",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/employees", body)
	rr := httptest.NewRecorder()
	h.CreateEmployee(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want=%d body=%s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if created == nil {
		t.Fatal("repo Create não foi chamado")
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("id e created_at devem ser gerados no servidor: %#v", created)
	}
	if created.FoodBasketValue != models.DefaultFoodBasketValue {
		t.Fatalf("food_basket_value default: got=%v want=%v", created.FoodBasketValue, models.DefaultFoodBasketValue)
	}

	var got models.Employee
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.ID != created.ID || got.FullName != "João Lima" {
		t.Fatalf("resposta deve trazer o registro completo: %#v", got)
	}
}

func TestCreateEmployee_WrongPassword(t *testing.T) {
	calls := 0
	rm := &employeeRepoMock{
		CreateFn: func(_ context.Context, _ *models.Employee) (string, error) {
			calls++
			return "", nil
		},
	}
	h := newHandler(rm, &sectorRepoMock{}, &pubMock{})

	body := jsonBody(t, EmployeeCreateDTO{FullName: "João Lima", GrossSalary: 2500, Password: "errada"})
	rr := httptest.NewRecorder()
	h.CreateEmployee(rr, httptest.NewRequest(http.MethodPost, "/api/employees", body))

	if rr.Code != http.StatusForbidden {
		t.Fatalf("status=%d want=%d body=%s", rr.Code, http.StatusForbidden, rr.Body.String())
	}
	if calls != 0 {
		t.Fatalf("senha errada não pode persistir nada; Create chamado %d vez(es)", calls)
	}
}

func TestCreateEmployee_MissingName(t *testing.T) {
	h := newHandler(&employeeRepoMock{}, &sectorRepoMock{}, &pubMock{})

	body := jsonBody(t, EmployeeCreateDTO{GrossSalary: 2500, Password: testPassword})
	rr := httptest.NewRecorder()
	h.CreateEmployee(rr, httptest.NewRequest(http.MethodPost, "/api/employees", body))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want=%d", rr.Code, http.StatusBadRequest)
	}
}

func TestCreateEmployee_MalformedJSON(t *testing.T) {
	h := newHandler(&employeeRepoMock{}, &sectorRepoMock{}, &pubMock{})

	rr := httptest.NewRecorder()
	h.CreateEmployee(rr, httptest.NewRequest(http.MethodPost, "/api/employees", bytes.NewBufferString("{nope")))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want=%d", rr.Code, http.StatusBadRequest)
	}
}

// ---------- GET /api/employees/{id}

func TestGetEmployee_Found(t *testing.T) {
	rm := &employeeRepoMock{
		GetByIDFn: func(_ context.Context, id string) (*models.Employee, error) {
			if id != employeeID {
				t.Fatalf("id: got=%s want=%s", id, employeeID)
			}
			return &models.Employee{ID: id, FullName: "Maria Souza"}, nil
		},
	}
	h := newHandler(rm, &sectorRepoMock{}, &pubMock{})

	req := httptest.NewRequest(http.MethodGet, "/api/employees/"+employeeID, nil)
	req.SetPathValue("id", employeeID)
	rr := httptest.NewRecorder()
	h.GetEmployee(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want=%d body=%s", rr.Code, http.StatusOK, rr.Body.String())
	}
}

func TestGetEmployee_NotFound(t *testing.T) {
	rm := &employeeRepoMock{
		GetByIDFn: func(_ context.Context, _ string) (*models.Employee, error) {
			return nil, repository.ErrNotFound
		},
	}
	h := newHandler(rm, &sectorRepoMock{}, &pubMock{})

	req := httptest.NewRequest(http.MethodGet, "/api/employees/nope", nil)
	req.SetPathValue("id", "nope")
	rr := httptest.NewRecorder()
	h.GetEmployee(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d want=%d", rr.Code, http.StatusNotFound)
	}
}

// ---------- PUT /api/employees/{id}/salary

func TestUpdateSalary_OK(t *testing.T) {
	var gotSet bson.M
	rm := &employeeRepoMock{
		GetByIDFn: func(_ context.Context, id string) (*models.Employee, error) {
			return &models.Employee{ID: id, FullName: "Maria Souza", GrossSalary: 3000}, nil
		},
		SetFieldsFn: func(_ context.Context, _ string, set bson.M) error {
			gotSet = set
			return nil
		},
	}
	h := newHandler(rm, &sectorRepoMock{}, &pubMock{})

	salary := 3500.0
	body := jsonBody(t, EmployeeUpdateDTO{GrossSalary: &salary, Password: testPassword})
	req := httptest.NewRequest(http.MethodPut, "/api/employees/"+employeeID+"/salary", body)
	req.SetPathValue("id", employeeID)
	rr := httptest.NewRecorder()
	h.UpdateSalary(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want=%d body=%s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if gotSet["gross_salary"] != 3500.0 {
		t.Fatalf("set inesperado: %#v", gotSet)
	}
}

// Valor omitido: no-op que ainda reporta sucesso.
func TestUpdateSalary_OmittedValueNoop(t *testing.T) {
	rm := &employeeRepoMock{
		GetByIDFn: func(_ context.Context, id string) (*models.Employee, error) {
			return &models.Employee{ID: id}, nil
		},
		SetFieldsFn: func(_ context.Context, _ string, set bson.M) error {
			if len(set) != 0 {
				t.Fatalf("set deveria ser vazio: %#v", set)
			}
			return nil
		},
	}
	h := newHandler(rm, &sectorRepoMock{}, &pubMock{})

	body := jsonBody(t, EmployeeUpdateDTO{Password: testPassword})
	req := httptest.NewRequest(http.MethodPut, "/api/employees/"+employeeID+"/salary", body)
	req.SetPathValue("id", employeeID)
	rr := httptest.NewRecorder()
	h.UpdateSalary(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want=%d body=%s", rr.Code, http.StatusOK, rr.Body.String())
	}
}

func TestUpdateSalary_WrongPassword(t *testing.T) {
	h := newHandler(&employeeRepoMock{}, &sectorRepoMock{}, &pubMock{})

	salary := 3500.0
	body := jsonBody(t, EmployeeUpdateDTO{GrossSalary: &salary, Password: "errada"})
	req := httptest.NewRequest(http.MethodPut, "/api/employees/"+employeeID+"/salary", body)
	req.SetPathValue("id", employeeID)
	rr := httptest.NewRecorder()
	h.UpdateSalary(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("status=%d want=%d", rr.Code, http.StatusForbidden)
	}
}

func TestUpdateSalary_NotFound(t *testing.T) {
	rm := &employeeRepoMock{
		GetByIDFn: func(_ context.Context, _ string) (*models.Employee, error) {
			return nil, repository.ErrNotFound
		},
	}
	h := newHandler(rm, &sectorRepoMock{}, &pubMock{})

	salary := 3500.0
	body := jsonBody(t, EmployeeUpdateDTO{GrossSalary: &salary, Password: testPassword})
	req := httptest.NewRequest(http.MethodPut, "/api/employees/nope/salary", body)
	req.SetPathValue("id", "nope")
	rr := httptest.NewRecorder()
	h.UpdateSalary(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d want=%d", rr.Code, http.StatusNotFound)
	}
}

// ---------- PUT /api/employees/{id}/pix

func TestUpdatePix_OK(t *testing.T) {
	var gotSet bson.M
	rm := &employeeRepoMock{
		GetByIDFn: func(_ context.Context, id string) (*models.Employee, error) {
			return &models.Employee{ID: id, FullName: "Maria Souza"}, nil
		},
		SetFieldsFn: func(_ context.Context, _ string, set bson.M) error {
			gotSet = set
			return nil
		},
	}
	h := newHandler(rm, &sectorRepoMock{}, &pubMock{})

	pix := "maria@mail.com"
	body := jsonBody(t, EmployeeUpdateDTO{PixKey: &pix, Password: testPassword})
	req := httptest.NewRequest(http.MethodPut, "/api/employees/"+employeeID+"/pix", body)
	req.SetPathValue("id", employeeID)
	rr := httptest.NewRecorder()
	h.UpdatePix(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want=%d body=%s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if gotSet["pix_key"] != "maria@mail.com" {
		t.Fatalf("set inesperado: %#v", gotSet)
	}
}

// ---------- DELETE /api/employees/{id}

func TestFireEmployee_OK(t *testing.T) {
	deleted := ""
	rm := &employeeRepoMock{
		GetByIDFn: func(_ context.Context, id string) (*models.Employee, error) {
			return &models.Employee{ID: id, FullName: "Maria Souza"}, nil
		},
		DeleteFn: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	h := newHandler(rm, &sectorRepoMock{}, &pubMock{})

	body := jsonBody(t, PasswordDTO{Password: testPassword})
	req := httptest.NewRequest(http.MethodDelete, "/api/employees/"+employeeID, body)
	req.SetPathValue("id", employeeID)
	rr := httptest.NewRecorder()
	h.FireEmployee(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want=%d body=%s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if deleted != employeeID {
		t.Fatalf("delete id: got=%q want=%q", deleted, employeeID)
	}
}

func TestFireEmployee_NotFound(t *testing.T) {
	rm := &employeeRepoMock{
		GetByIDFn: func(_ context.Context, _ string) (*models.Employee, error) {
			return nil, repository.ErrNotFound
		},
	}
	h := newHandler(rm, &sectorRepoMock{}, &pubMock{})

	body := jsonBody(t, PasswordDTO{Password: testPassword})
	req := httptest.NewRequest(http.MethodDelete, "/api/employees/nope", body)
	req.SetPathValue("id", "nope")
	rr := httptest.NewRecorder()
	h.FireEmployee(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d want=%d", rr.Code, http.StatusNotFound)
	}
}

func TestFireEmployee_WrongPassword(t *testing.T) {
	calls := 0
	rm := &employeeRepoMock{
		DeleteFn: func(_ context.Context, _ string) error {
			calls++
			return nil
		},
	}
	h := newHandler(rm, &sectorRepoMock{}, &pubMock{})

	body := jsonBody(t, PasswordDTO{Password: "errada"})
	req := httptest.NewRequest(http.MethodDelete, "/api/employees/"+employeeID, body)
	req.SetPathValue("id", employeeID)
	rr := httptest.NewRecorder()
	h.FireEmployee(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("status=%d want=%d", rr.Code, http.StatusForbidden)
	}
	if calls != 0 {
		t.Fatalf("senha errada não pode deletar; Delete chamado %d vez(es)", calls)
	}
}

// ---------- PUT /api/employees/{id}/calculations

// Sem senha; só os campos presentes entram no $set.
func TestUpdateCalculations_PartialSet(t *testing.T) {
	var gotSet bson.M
	rm := &employeeRepoMock{
		GetByIDFn: func(_ context.Context, id string) (*models.Employee, error) {
			return &models.Employee{ID: id}, nil
		},
		SetFieldsFn: func(_ context.Context, _ string, set bson.M) error {
			gotSet = set
			return nil
		},
	}
	h := newHandler(rm, &sectorRepoMock{}, &pubMock{})

	hours := 92.5
	absences := 2
	body := jsonBody(t, CalculationsDTO{SecondHalfHours: &hours, SecondHalfAbsence: &absences})
	req := httptest.NewRequest(http.MethodPut, "/api/employees/"+employeeID+"/calculations", body)
	req.SetPathValue("id", employeeID)
	rr := httptest.NewRecorder()
	h.UpdateCalculations(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want=%d body=%s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if len(gotSet) != 2 {
		t.Fatalf("só os campos presentes entram no set: %#v", gotSet)
	}
	if gotSet["second_half_hours"] != 92.5 || gotSet["second_half_absences"] != 2 {
		t.Fatalf("set inesperado: %#v", gotSet)
	}
}

func TestUpdateCalculations_NotFound(t *testing.T) {
	rm := &employeeRepoMock{
		GetByIDFn: func(_ context.Context, _ string) (*models.Employee, error) {
			return nil, repository.ErrNotFound
		},
	}
	h := newHandler(rm, &sectorRepoMock{}, &pubMock{})

	body := jsonBody(t, CalculationsDTO{})
	req := httptest.NewRequest(http.MethodPut, "/api/employees/nope/calculations", body)
	req.SetPathValue("id", "nope")
	rr := httptest.NewRecorder()
	h.UpdateCalculations(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d want=%d", rr.Code, http.StatusNotFound)
	}
}

// ---------- GET /api/employees/{id}/payroll/{period}

func TestCalculatePayroll_SecondHalfExample(t *testing.T) {
	rm := &employeeRepoMock{
		GetByIDFn: func(_ context.Context, id string) (*models.Employee, error) {
			return &models.Employee{
				ID:                id,
				FullName:          "Maria Souza",
				GrossSalary:       3000,
				SecondHalfAbsence: 2,
				FoodBasketValue:   50,
			}, nil
		},
	}
	h := newHandler(rm, &sectorRepoMock{}, &pubMock{})

	req := httptest.NewRequest(http.MethodGet, "/api/employees/"+employeeID+"/payroll/second", nil)
	req.SetPathValue("id", employeeID)
	req.SetPathValue("period", "second")
	rr := httptest.NewRecorder()
	h.CalculatePayroll(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want=%d body=%s", rr.Code, http.StatusOK, rr.Body.String())
	}
	var got map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	// diária 100, falta 350, 2 faltas 700, base 1800 -> 1100
	if got["discount_value"] != 700.0 || got["total_to_pay"] != 1100.0 {
		t.Fatalf("payload inesperado: %#v", got)
	}
	if got["period"] != "Segunda Quinzena" {
		t.Fatalf("period=%v", got["period"])
	}
}

func TestCalculatePayroll_InvalidPeriod(t *testing.T) {
	called := false
	rm := &employeeRepoMock{
		GetByIDFn: func(_ context.Context, id string) (*models.Employee, error) {
			called = true
			return &models.Employee{ID: id, GrossSalary: 3000}, nil
		},
		SetFieldsFn: func(_ context.Context, _ string, _ bson.M) error {
			t.Fatal("período inválido não pode mutar nada")
			return nil
		},
	}
	h := newHandler(rm, &sectorRepoMock{}, &pubMock{})

	req := httptest.NewRequest(http.MethodGet, "/api/employees/"+employeeID+"/payroll/third", nil)
	req.SetPathValue("id", employeeID)
	req.SetPathValue("period", "third")
	rr := httptest.NewRecorder()
	h.CalculatePayroll(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want=%d body=%s", rr.Code, http.StatusBadRequest, rr.Body.String())
	}
	if !called {
		t.Fatal("busca do funcionário vem antes da validação do período")
	}
}

func TestCalculatePayroll_NotFound(t *testing.T) {
	rm := &employeeRepoMock{
		GetByIDFn: func(_ context.Context, _ string) (*models.Employee, error) {
			return nil, repository.ErrNotFound
		},
	}
	h := newHandler(rm, &sectorRepoMock{}, &pubMock{})

	req := httptest.NewRequest(http.MethodGet, "/api/employees/nope/payroll/first", nil)
	req.SetPathValue("id", "nope")
	req.SetPathValue("period", "first")
	rr := httptest.NewRecorder()
	h.CalculatePayroll(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d want=%d", rr.Code, http.StatusNotFound)
	}
}

// ---------- POST /api/validate-password

func TestValidatePassword(t *testing.T) {
	h := newHandler(&employeeRepoMock{}, &sectorRepoMock{}, &pubMock{})

	rr := httptest.NewRecorder()
	h.ValidatePassword(rr, httptest.NewRequest(http.MethodPost, "/api/validate-password",
		jsonBody(t, PasswordDTO{Password: testPassword})))
	if rr.Code != http.StatusOK {
		t.Fatalf("senha certa: status=%d want=%d", rr.Code, http.StatusOK)
	}

	rr = httptest.NewRecorder()
	h.ValidatePassword(rr, httptest.NewRequest(http.MethodPost, "/api/validate-password",
		jsonBody(t, PasswordDTO{Password: "errada"})))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("senha errada: status=%d want=%d", rr.Code, http.StatusForbidden)
	}
}
