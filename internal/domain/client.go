package domain

import "time"

type ClientStatus string

const (
	ClientStatusActive     ClientStatus = "ACTIVE"
	ClientStatusRestricted ClientStatus = "RESTRICTED"
)

type Client struct {
	ID          int64        `json:"id"`
	Rut         string       `json:"rut"`
	Name        string       `json:"name"`
	LastName    string       `json:"last_name"`
	Email       string       `json:"email"`
	PhoneNumber string       `json:"phone_number"`
	Username    string       `json:"username"`
	Role        string       `json:"role"`
	Status      ClientStatus `json:"status"`
	CreatedOn   time.Time    `json:"created_on"`
}
