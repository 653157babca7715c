package models

// Правило закрытия уровня согласования
type ApprovalRule string

const (
	// уровень закрыт, когда согласовали все участники уровня
	ApprovalRuleAll ApprovalRule = "ALL"
	// уровень закрывает первое решение любого участника
	ApprovalRuleAny ApprovalRule = "ANY"
)

func (r ApprovalRule) IsValid() bool {
	return r == ApprovalRuleAll || r == ApprovalRuleAny
}

// Решение согласующего на уровне
type ApprovalDecision string

const (
	ApprovalDecisionApproved ApprovalDecision = "approved"
	ApprovalDecisionReturned ApprovalDecision = "returned"
	ApprovalDecisionRejected ApprovalDecision = "rejected"
)
