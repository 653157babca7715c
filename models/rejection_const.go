package models

// Состояние запроса на отказ от задания
type RejectionResolution string

const (
	RejectionResolutionPending  RejectionResolution = "pending"
	RejectionResolutionApproved RejectionResolution = "approved"
	RejectionResolutionDenied   RejectionResolution = "denied"
)

func (r RejectionResolution) IsResolved() bool {
	return r == RejectionResolutionApproved || r == RejectionResolutionDenied
}

// Идентификатор системного актора для автозакрытия по дедлайну
const SystemActorID = "system"
