package domain

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type HospitalOption struct {
	ID       HospitalID `json:"id"`
	Label    string     `json:"label"`
	Name     string     `json:"name"`
	Location string     `json:"location"`
}

// SelectHospitalRequest with an empty HospitalID clears the selection.
type SelectHospitalRequest struct {
	HospitalID string `json:"hospital_id" form:"hospital_id" validate:"omitempty,oneof=emory-main emory-midtown"`
}
