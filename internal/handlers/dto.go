package handlers

// Contratos de entrada. A senha administrativa viaja no corpo das
// operações de escrita; nunca é persistida.

type EmployeeCreateDTO struct {
	FullName    string  `json:"full_name"`
	GrossSalary float64 `json:"gross_salary"`
	Password    string  `json:"password"`
	Photo       string  `json:"photo,omitempty"`
	PixKey      string  `json:"pix_key,omitempty"`
}

// Atualização de salário e de chave PIX compartilham o mesmo contrato;
// ponteiros distinguem "omitido" de "informado".
type EmployeeUpdateDTO struct {
	GrossSalary *float64 `json:"gross_salary,omitempty"`
	PixKey      *string  `json:"pix_key,omitempty"`
	Password    string   `json:"password"`
}

type PasswordDTO struct {
	Password string `json:"password"`
}

// Campos de cálculo: qualquer subconjunto pode vir; campo ausente não
// mexe no valor armazenado. Sem senha, por contrato histórico.
type CalculationsDTO struct {
	EmployeeID        string   `json:"employee_id,omitempty"` // ignorado; o id da rota manda
	FirstHalfHours    *float64 `json:"first_half_hours,omitempty"`
	SecondHalfHours   *float64 `json:"second_half_hours,omitempty"`
	FirstHalfAdvance  *float64 `json:"first_half_advance,omitempty"`
	SecondHalfAbsence *int     `json:"second_half_absences,omitempty"`
	FoodBasketValue   *float64 `json:"food_basket_value,omitempty"`
}

type SectorUpdateDTO struct {
	Password      string  `json:"password"`
	DailyQuantity float64 `json:"daily_quantity"`
	Date          string  `json:"date"`
}
