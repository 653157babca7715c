package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJobTransitions(t *testing.T) {
	t.Run(`полный путь задания до закрытия`, func(t *testing.T) {
		status := JobStatusDraft
		path := []struct {
			action JobAction
			want   JobStatus
		}{
			{JobActionSubmit, JobStatusPendingApproval},
			{JobActionReturn, JobStatusReturned},
			{JobActionSubmit, JobStatusPendingApproval},
			{JobActionApprove, JobStatusPendingApproval},
			{JobActionAssign, JobStatusAssigned},
			{JobActionStart, JobStatusInProgress},
			{JobActionRequestClose, JobStatusPendingClose},
			{JobActionRequestRevision, JobStatusInProgress},
			{JobActionRequestClose, JobStatusPendingClose},
			{JobActionConfirmClose, JobStatusClosed},
		}
		for _, step := range path {
			var err error
			if step.action == JobActionAssign {
				// назначение доступно из approved, согласование не двигает статус само по себе
				status = JobStatusApproved
			}
			status, err = status.NextStatus(step.action)
			require.Nil(t, err)
			require.Equal(t, step.want, status)
		}
	})

	t.Run(`цикл доработки из работы`, func(t *testing.T) {
		status, err := JobStatusInProgress.NextStatus(JobActionRevise)
		require.Nil(t, err)
		require.Equal(t, JobStatusRework, status)

		status, err = status.NextStatus(JobActionStart)
		require.Nil(t, err)
		require.Equal(t, JobStatusInProgress, status)
	})

	t.Run(`недопустимый переход дает типизированную ошибку`, func(t *testing.T) {
		_, err := JobStatusDraft.NextStatus(JobActionApprove)
		require.NotNil(t, err)
		require.True(t, IsInvalidTransitionError(err))

		_, err = JobStatusClosed.NextStatus(JobActionSubmit)
		require.NotNil(t, err)
		require.True(t, IsInvalidTransitionError(err))

		_, err = JobStatusRejected.NextStatus(JobActionStart)
		require.NotNil(t, err)
		require.True(t, IsInvalidTransitionError(err))
	})

	t.Run(`из конечных статусов переходов нет`, func(t *testing.T) {
		actions := []JobAction{
			JobActionSubmit, JobActionApprove, JobActionReturn, JobActionReject,
			JobActionAssign, JobActionStart, JobActionRequestClose,
			JobActionConfirmClose, JobActionRequestRevision, JobActionRevise,
		}
		for _, terminal := range []JobStatus{JobStatusRejected, JobStatusClosed} {
			require.True(t, terminal.IsTerminal())
			for _, action := range actions {
				_, err := terminal.NextStatus(action)
				require.NotNil(t, err, "статус %v, действие %v", terminal, action)
			}
		}
	})

	t.Run(`guard-методы статусов`, func(t *testing.T) {
		require.True(t, JobStatusDraft.AllowEdit())
		require.True(t, JobStatusReturned.AllowEdit())
		require.False(t, JobStatusPendingApproval.AllowEdit())
		require.False(t, JobStatusClosed.AllowEdit())

		require.True(t, JobStatusInProgress.AllowComment())
		require.False(t, JobStatusClosed.AllowComment())
		require.False(t, JobStatusRejected.AllowComment())

		require.True(t, JobStatusInProgress.AllowRejectionRequest())
		require.True(t, JobStatusApproved.AllowRejectionRequest())
		require.False(t, JobStatusDraft.AllowRejectionRequest())
		require.False(t, JobStatusClosed.AllowRejectionRequest())
	})

	t.Run(`возврат и отказ с согласования`, func(t *testing.T) {
		status, err := JobStatusPendingApproval.NextStatus(JobActionReturn)
		require.Nil(t, err)
		require.Equal(t, JobStatusReturned, status)

		status, err = JobStatusPendingApproval.NextStatus(JobActionReject)
		require.Nil(t, err)
		require.Equal(t, JobStatusRejected, status)
	})
}
