package negotiation

type ProposeDTO struct {
	Attribute string `json:"attribute" validate:"required,oneof=date place"`
	Value     string `json:"value" validate:"required,min=1,max=200"`
}

type AcceptProposalDTO struct {
	Attribute string `json:"attribute" validate:"required,oneof=date place"`
}

type CounterOfferDTO struct {
	Attribute string `json:"attribute" validate:"required,oneof=date place"`
	Value     string `json:"value" validate:"required,min=1,max=200"`
}
