package rejectionapimodels

import (
	"testing"
	"time"

	"jd-portal-backend/models"

	"github.com/stretchr/testify/require"
)

func TestRejectionRequestDataValidate(t *testing.T) {
	t.Run(`причина обязательна`, func(t *testing.T) {
		err := RejectionRequestData{}.Validate()
		require.NotNil(t, err)
		require.True(t, models.IsValidationError(err))
	})

	t.Run(`истекший дедлайн автозакрытия допустим`, func(t *testing.T) {
		// закроется на ближайшем проходе воркера
		past := time.Now().Add(-time.Minute)
		require.Nil(t, RejectionRequestData{Reason: "не мой профиль", AutoCloseAt: &past}.Validate())
	})

	t.Run(`валидный запрос`, func(t *testing.T) {
		future := time.Now().Add(48 * time.Hour)
		require.Nil(t, RejectionRequestData{Reason: "не мой профиль"}.Validate())
		require.Nil(t, RejectionRequestData{Reason: "не мой профиль", AutoCloseAt: &future}.Validate())
	})
}
