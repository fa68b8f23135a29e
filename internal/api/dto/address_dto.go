package dto

type AddressDTO struct {
	Type         string `json:"type"`
	Label        string `json:"label"`
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	Landmark     string `json:"landmark"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	Country      string `json:"country"`
	IsDefault    bool   `json:"isDefault"`
	Instructions string `json:"instructions"`
}
