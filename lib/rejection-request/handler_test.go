package rejectionhandler

import (
	"testing"

	jobstore "jd-portal-backend/lib/job-flow/store"
	timelinestore "jd-portal-backend/lib/job-flow/timeline-store"
	rejectionstore "jd-portal-backend/lib/rejection-request/store"
	"jd-portal-backend/models"
	rejectionapimodels "jd-portal-backend/models/api/rejection"
	dbmodels "jd-portal-backend/models/db"

	"github.com/stretchr/testify/require"
)

type stubRejectionStore struct {
	rejectionstore.Provider
	rec         *dbmodels.RejectionRequest
	resolutions map[string]models.RejectionResolution
}

func newStubRejectionStore(rec *dbmodels.RejectionRequest) *stubRejectionStore {
	return &stubRejectionStore{
		rec:         rec,
		resolutions: map[string]models.RejectionResolution{},
	}
}

func (s *stubRejectionStore) GetByID(spaceID, id string) (*dbmodels.RejectionRequest, error) {
	if s.rec == nil || s.rec.ID != id {
		return nil, nil
	}
	rec := *s.rec
	return &rec, nil
}

func (s *stubRejectionStore) ResolveIfPending(id string, resolution models.RejectionResolution, resolvedBy, note string) (bool, error) {
	if _, ok := s.resolutions[id]; ok {
		return false, nil
	}
	s.resolutions[id] = resolution
	return true, nil
}

type stubJobStore struct {
	jobstore.Provider
	job          *dbmodels.DesignJob
	statusWrites int
}

func (s *stubJobStore) GetByID(spaceID, id string) (*dbmodels.DesignJob, error) {
	if s.job == nil || s.job.ID != id {
		return nil, nil
	}
	job := *s.job
	return &job, nil
}

func (s *stubJobStore) UpdateVersioned(spaceID, id string, version int, updMap map[string]interface{}) error {
	if version != s.job.Version {
		return models.NewConcurrentModificationError(version)
	}
	s.job.Version++
	if status, ok := updMap["status"].(models.JobStatus); ok {
		s.job.Status = status
		s.statusWrites++
	}
	return nil
}

type stubTimelineStore struct {
	timelinestore.Provider
	entries []dbmodels.TimelineEntry
}

func (s *stubTimelineStore) Create(rec dbmodels.TimelineEntry) (string, error) {
	s.entries = append(s.entries, rec)
	return rec.JobID, nil
}

func testJob(status models.JobStatus, approvers ...string) *dbmodels.DesignJob {
	job := &dbmodels.DesignJob{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: "job1"},
			SpaceID:   "s1",
		},
		AuthorID: "author1",
		Status:   status,
		Version:  3,
	}
	if len(approvers) > 0 {
		job.Levels = []dbmodels.JobApprovalLevel{{
			JobID:       "job1",
			Ordinal:     1,
			Rule:        models.ApprovalRuleAny,
			ApproverIDs: approvers,
		}}
	}
	return job
}

func testRequest() *dbmodels.RejectionRequest {
	return &dbmodels.RejectionRequest{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: "rr1"},
			SpaceID:   "s1",
		},
		JobID:       "job1",
		Reason:      "не хватает исходных данных",
		RequestedBy: "designer1",
		Resolution:  models.RejectionResolutionPending,
	}
}

func TestCanResolve(t *testing.T) {
	t.Run(`согласующий из уровня снапшота может закрыть запрос`, func(t *testing.T) {
		job := testJob(models.JobStatusInProgress, "appr1", "appr2")
		require.True(t, canResolve(*job, "appr1"))
		require.True(t, canResolve(*job, "appr2"))
	})
	t.Run(`автор вне круга согласующих закрыть запрос не может`, func(t *testing.T) {
		job := testJob(models.JobStatusInProgress, "appr1")
		require.False(t, canResolve(*job, "author1"))
	})
	t.Run(`без уровней запрос закрывает автор`, func(t *testing.T) {
		job := testJob(models.JobStatusInProgress)
		require.True(t, canResolve(*job, "author1"))
		require.False(t, canResolve(*job, "appr1"))
	})
}

func TestApproveActorGuard(t *testing.T) {
	job := testJob(models.JobStatusInProgress, "appr1")
	h := impl{
		store:    newStubRejectionStore(testRequest()),
		jobStore: &stubJobStore{job: job},
	}
	t.Run(`вне круга согласующих — отказ в доступе`, func(t *testing.T) {
		err := h.Approve("s1", "rr1", "author1", rejectionapimodels.ResolveData{})
		require.Error(t, err)
		require.True(t, models.IsUnauthorizedActorError(err))
	})
	t.Run(`исполнитель тоже не закрывает свой запрос`, func(t *testing.T) {
		err := h.Deny("s1", "rr1", "designer1", rejectionapimodels.DenyData{Reason: "сам запросил"})
		require.Error(t, err)
		require.True(t, models.IsUnauthorizedActorError(err))
	})
}

func TestApproveTx(t *testing.T) {
	t.Run(`закрытие запроса отклоняет задание версионной записью`, func(t *testing.T) {
		store := newStubRejectionStore(testRequest())
		jStore := &stubJobStore{job: testJob(models.JobStatusInProgress, "appr1")}
		tlStore := &stubTimelineStore{}
		h := impl{}

		rejected, err := h.approveTx(store, jStore, tlStore, *testRequest(), "appr1", "согласен")
		require.NoError(t, err)
		require.NotNil(t, rejected)
		require.Equal(t, models.RejectionResolutionApproved, store.resolutions["rr1"])
		require.Equal(t, models.JobStatusRejected, jStore.job.Status)
		require.Equal(t, 4, jStore.job.Version)
		require.Len(t, tlStore.entries, 1)
		require.Equal(t, models.TimelineEventRejected, tlStore.entries[0].EventType)
		require.Equal(t, "appr1", tlStore.entries[0].ActorID)
	})
	t.Run(`задание успело завершиться — запрос не закрывается`, func(t *testing.T) {
		store := newStubRejectionStore(testRequest())
		jStore := &stubJobStore{job: testJob(models.JobStatusClosed, "appr1")}
		h := impl{}

		_, err := h.approveTx(store, jStore, &stubTimelineStore{}, *testRequest(), "appr1", "")
		require.Error(t, err)
		require.True(t, models.IsValidationError(err))
		require.Equal(t, 0, jStore.statusWrites)
	})
}

func TestSweepTx(t *testing.T) {
	t.Run(`просроченный запрос закрывается, задание отклоняется`, func(t *testing.T) {
		store := newStubRejectionStore(testRequest())
		jStore := &stubJobStore{job: testJob(models.JobStatusInProgress, "appr1")}
		tlStore := &stubTimelineStore{}
		h := impl{}

		rejected, err := h.sweepTx(store, jStore, tlStore, *testRequest())
		require.NoError(t, err)
		require.NotNil(t, rejected)
		require.Equal(t, models.RejectionResolutionApproved, store.resolutions["rr1"])
		require.Equal(t, models.JobStatusRejected, jStore.job.Status)
		require.Equal(t, 4, jStore.job.Version)
		require.Len(t, tlStore.entries, 1)
		require.Equal(t, models.SystemActorID, tlStore.entries[0].ActorID)
	})
	t.Run(`повторный проход по закрытому запросу ничего не меняет`, func(t *testing.T) {
		store := newStubRejectionStore(testRequest())
		jStore := &stubJobStore{job: testJob(models.JobStatusInProgress, "appr1")}
		tlStore := &stubTimelineStore{}
		h := impl{}

		rejected, err := h.sweepTx(store, jStore, tlStore, *testRequest())
		require.NoError(t, err)
		require.NotNil(t, rejected)

		rejected, err = h.sweepTx(store, jStore, tlStore, *testRequest())
		require.NoError(t, err)
		require.Nil(t, rejected)
		require.Equal(t, 1, jStore.statusWrites)
		require.Len(t, tlStore.entries, 1)
		require.Equal(t, models.RejectionResolutionApproved, store.resolutions["rr1"])
	})
	t.Run(`задание завершилось после выборки — запрос закрывается отказом`, func(t *testing.T) {
		// в выборке задание еще рабочее, в транзакции уже закрыто
		rec := testRequest()
		stale := testJob(models.JobStatusInProgress, "appr1")
		rec.Job = stale
		store := newStubRejectionStore(rec)
		jStore := &stubJobStore{job: testJob(models.JobStatusClosed, "appr1")}
		tlStore := &stubTimelineStore{}
		h := impl{}

		rejected, err := h.sweepTx(store, jStore, tlStore, *rec)
		require.NoError(t, err)
		require.Nil(t, rejected)
		require.Equal(t, models.RejectionResolutionDenied, store.resolutions["rr1"])
		require.Equal(t, models.JobStatusClosed, jStore.job.Status)
		require.Equal(t, 0, jStore.statusWrites)
		require.Empty(t, tlStore.entries)
	})
}
