package types

type SalaryRecordRequest struct {
	UserID      uint    `json:"userId"`
	Month       int     `json:"month"`
	Year        int     `json:"year"`
	BasicSalary float64 `json:"basicSalary"`
	Bonus       float64 `json:"bonus"`
	Deductions  float64 `json:"deductions"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes"`
}

func (r *SalaryRecordRequest) Validate() string {
	if r.UserID == 0 {
		return "User id is required"
	}
	if r.Month < 1 || r.Month > 12 {
		return "Month must be between 1 and 12"
	}
	if r.Year < 2000 || r.Year > 2100 {
		return "Year is out of range"
	}
	if r.BasicSalary < 0 || r.Bonus < 0 || r.Deductions < 0 {
		return "Salary figures must not be negative"
	}
	if r.Status != "" && r.Status != "Pending" && r.Status != "Paid" {
		return "Status must be Pending or Paid"
	}
	return ""
}
