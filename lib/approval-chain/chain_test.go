package approvalchain

import (
	"testing"

	"jd-portal-backend/models"
	dbmodels "jd-portal-backend/models/db"

	"github.com/stretchr/testify/require"
)

func level(rule models.ApprovalRule, approvers ...string) dbmodels.JobApprovalLevel {
	return dbmodels.JobApprovalLevel{
		Ordinal:     1,
		Rule:        rule,
		ApproverIDs: approvers,
	}
}

func approveAction(actorID string) dbmodels.JobLevelAction {
	return dbmodels.JobLevelAction{
		Level:    1,
		ActorID:  actorID,
		Decision: models.ApprovalDecisionApproved,
	}
}

func TestIsLevelSatisfied(t *testing.T) {
	t.Run(`ANY: достаточно первого согласования`, func(t *testing.T) {
		lvl := level(models.ApprovalRuleAny, "a", "b")
		require.False(t, IsLevelSatisfied(lvl, nil))
		require.True(t, IsLevelSatisfied(lvl, []dbmodels.JobLevelAction{approveAction("a")}))
	})

	t.Run(`ALL: нужны все участники`, func(t *testing.T) {
		lvl := level(models.ApprovalRuleAll, "a", "b")
		require.False(t, IsLevelSatisfied(lvl, []dbmodels.JobLevelAction{approveAction("a")}))
		require.True(t, IsLevelSatisfied(lvl, []dbmodels.JobLevelAction{approveAction("a"), approveAction("b")}))
	})

	t.Run(`ALL: чужие решения не считаются`, func(t *testing.T) {
		lvl := level(models.ApprovalRuleAll, "a", "b")
		actions := []dbmodels.JobLevelAction{approveAction("a"), approveAction("outsider")}
		require.False(t, IsLevelSatisfied(lvl, actions))
	})
}

func TestIsEligible(t *testing.T) {
	lvl := level(models.ApprovalRuleAny, "a", "b")
	require.True(t, IsEligible(lvl, "a"))
	require.False(t, IsEligible(lvl, "c"))
}

func TestIsEligibleAnyLevel(t *testing.T) {
	first := level(models.ApprovalRuleAny, "a")
	second := level(models.ApprovalRuleAll, "b", "c")
	second.Ordinal = 2
	levels := []dbmodels.JobApprovalLevel{first, second}
	require.True(t, IsEligibleAnyLevel(levels, "a"))
	require.True(t, IsEligibleAnyLevel(levels, "c"))
	require.False(t, IsEligibleAnyLevel(levels, "d"))
	require.False(t, IsEligibleAnyLevel(nil, "a"))
}

func TestIsFullySatisfied(t *testing.T) {
	t.Run(`пустая цепочка пройдена сразу`, func(t *testing.T) {
		require.True(t, IsFullySatisfied(nil, 1))
	})

	t.Run(`указатель за последним уровнем`, func(t *testing.T) {
		levels := []dbmodels.JobApprovalLevel{level(models.ApprovalRuleAny, "a")}
		require.False(t, IsFullySatisfied(levels, 1))
		require.True(t, IsFullySatisfied(levels, 2))
	})
}

func TestSnapshotFromRoute(t *testing.T) {
	route := dbmodels.ApprovalRoute{
		Levels: []dbmodels.ApprovalRouteLevel{
			{Ordinal: 1, Rule: models.ApprovalRuleAny, ApproverIDs: []string{"a", "b"}},
			{Ordinal: 2, Rule: models.ApprovalRuleAll, ApproverIDs: []string{"c"}},
		},
	}
	snapshot := SnapshotFromRoute("job-1", route)
	require.Len(t, snapshot, 2)
	require.Equal(t, "job-1", snapshot[0].JobID)
	require.Equal(t, models.ApprovalRuleAll, snapshot[1].Rule)

	// снапшот не делит память с маршрутом
	route.Levels[0].ApproverIDs[0] = "changed"
	require.Equal(t, "a", snapshot[0].ApproverIDs[0])
}
