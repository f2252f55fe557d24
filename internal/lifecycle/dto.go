package lifecycle

type SaveDecisionDTO struct {
	Decision string `json:"decision" validate:"required,oneof=continue stop"`
}
