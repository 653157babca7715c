package dbmodels

import (
	"testing"

	"jd-portal-backend/models"

	"github.com/stretchr/testify/require"
)

func TestDesignJobApprovalHelpers(t *testing.T) {
	job := DesignJob{
		CurrentLevel: 2,
		Levels: []JobApprovalLevel{
			{Ordinal: 1, Rule: models.ApprovalRuleAny, ApproverIDs: []string{"u1", "u2"}},
			{Ordinal: 2, Rule: models.ApprovalRuleAll, ApproverIDs: []string{"u3"}},
		},
		LevelActions: []JobLevelAction{
			{Level: 1, ActorID: "u1", Decision: models.ApprovalDecisionApproved},
			{Level: 2, ActorID: "u3", Decision: models.ApprovalDecisionApproved},
		},
	}

	t.Run(`текущий уровень и признак последнего`, func(t *testing.T) {
		isLast, level := job.GetCurrentApprovalLevel()
		require.NotNil(t, level)
		require.True(t, isLast)
		require.Equal(t, 2, level.Ordinal)

		job.CurrentLevel = 1
		isLast, level = job.GetCurrentApprovalLevel()
		require.NotNil(t, level)
		require.False(t, isLast)
		require.Equal(t, 1, level.Ordinal)
		job.CurrentLevel = 2
	})

	t.Run(`уровень за пределами снапшота`, func(t *testing.T) {
		job.CurrentLevel = 3
		_, level := job.GetCurrentApprovalLevel()
		require.Nil(t, level)
		job.CurrentLevel = 2
	})

	t.Run(`решения только текущего уровня`, func(t *testing.T) {
		actions := job.ActionsAtCurrentLevel()
		require.Len(t, actions, 1)
		require.Equal(t, "u3", actions[0].ActorID)
	})
}

func TestPendingRejectionRequest(t *testing.T) {
	job := DesignJob{
		RejectionRequests: []RejectionRequest{
			{Reason: "старый", Resolution: models.RejectionResolutionDenied},
		},
	}
	require.Nil(t, job.PendingRejectionRequest())

	job.RejectionRequests = append(job.RejectionRequests, RejectionRequest{
		Reason:     "новый",
		Resolution: models.RejectionResolutionPending,
	})
	pending := job.PendingRejectionRequest()
	require.NotNil(t, pending)
	require.Equal(t, "новый", pending.Reason)
}
