package approvalchain

import (
	"jd-portal-backend/models"
	dbmodels "jd-portal-backend/models/db"
)

// Модель цепочки согласования поверх снапшота уровней задания.
// Снапшот копируется из маршрута при отправке и дальше не перечитывается.

// SnapshotFromRoute копирует уровни маршрута в снапшот задания
func SnapshotFromRoute(jobID string, route dbmodels.ApprovalRoute) []dbmodels.JobApprovalLevel {
	levels := make([]dbmodels.JobApprovalLevel, 0, len(route.Levels))
	for _, level := range route.Levels {
		approvers := make([]string, len(level.ApproverIDs))
		copy(approvers, level.ApproverIDs)
		levels = append(levels, dbmodels.JobApprovalLevel{
			JobID:       jobID,
			Ordinal:     level.Ordinal,
			Rule:        level.Rule,
			ApproverIDs: approvers,
		})
	}
	return levels
}

// IsEligible — входит ли актор в круг согласующих уровня
func IsEligible(level dbmodels.JobApprovalLevel, actorID string) bool {
	for _, id := range level.ApproverIDs {
		if id == actorID {
			return true
		}
	}
	return false
}

// IsEligibleAnyLevel — входит ли актор в круг согласующих хотя бы одного
// уровня снапшота
func IsEligibleAnyLevel(levels []dbmodels.JobApprovalLevel, actorID string) bool {
	for _, level := range levels {
		if IsEligible(level, actorID) {
			return true
		}
	}
	return false
}

// HasApproved — записано ли за актором согласование на этом уровне
func HasApproved(actions []dbmodels.JobLevelAction, actorID string) bool {
	for _, action := range actions {
		if action.ActorID == actorID && action.Decision == models.ApprovalDecisionApproved {
			return true
		}
	}
	return false
}

// IsLevelSatisfied — закрыт ли уровень записанными решениями.
// ANY: достаточно одного согласования. ALL: согласовать должен каждый из
// круга; единственный возврат/отказ срезает уровень без ожидания остальных —
// но этот путь обрабатывает статусная модель, сюда такие решения не попадают.
func IsLevelSatisfied(level dbmodels.JobApprovalLevel, actions []dbmodels.JobLevelAction) bool {
	switch level.Rule {
	case models.ApprovalRuleAny:
		for _, action := range actions {
			if action.Decision == models.ApprovalDecisionApproved {
				return true
			}
		}
		return false
	case models.ApprovalRuleAll:
		for _, approverID := range level.ApproverIDs {
			if !HasApproved(actions, approverID) {
				return false
			}
		}
		return len(level.ApproverIDs) > 0
	}
	return false
}

// IsFullySatisfied — пройдена ли цепочка целиком. Пустая цепочка считается
// пройденной сразу (путь автосогласования).
func IsFullySatisfied(levels []dbmodels.JobApprovalLevel, currentLevel int) bool {
	return currentLevel > len(levels)
}
