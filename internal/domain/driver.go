package domain

type Driver struct {
	ID        int32  `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Active    bool   `json:"active"`
	CreatedOn string `json:"created_on"`
	UpdatedOn string `json:"updated_on"`
}
