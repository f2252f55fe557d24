// internal/courtship/dto.go
package courtship

// DTOs for API requests

type SendLetterDTO struct {
	ToUID    string `json:"to_uid" validate:"required"`
	FromName string `json:"from_name" validate:"required,max=50"`
	Content  string `json:"content" validate:"required,min=1,max=1000"`
}

type AcceptMatchDTO struct {
	PartnerUID string `json:"partner_uid" validate:"required"`
}
