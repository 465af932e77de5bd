package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfloor-io/shopfloor/internal/domain/alert"
	"github.com/shopfloor-io/shopfloor/internal/domain/alert/valueobjects"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
)

func newActiveAlert(t *testing.T) *alert.ProductionAlert {
	t.Helper()
	a, err := alert.NewProductionAlert(42, 3, "PRODUCTS_PER_TEST", "viscosity",
		25, 10, valueobjects.SeverityHigh(), "gate pending", []string{"quality_manager"})
	require.NoError(t, err)
	a.SetID(11)
	return a
}

func TestAcknowledgeAlertUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("AcknowledgesActiveAlert", func(t *testing.T) {
		a := newActiveAlert(t)
		var updated *alert.ProductionAlert
		alertRepo := &mockAlertRepository{
			GetBySIDFunc: func(ctx context.Context, sid string) (*alert.ProductionAlert, error) {
				return a, nil
			},
			UpdateFunc: func(ctx context.Context, a *alert.ProductionAlert) error {
				updated = a
				return nil
			},
		}

		uc := NewAcknowledgeAlertUseCase(alertRepo, &mockLogger{})
		result, err := uc.Execute(ctx, AcknowledgeAlertCommand{AlertSID: a.SID(), OperatorID: 9})

		require.NoError(t, err)
		assert.Equal(t, a.SID(), result.AlertSID)
		assert.Equal(t, uint(9), result.AckedBy)
		assert.NotEmpty(t, result.AckedAt)
		require.NotNil(t, updated)
		assert.True(t, updated.IsActive(), "acknowledging must not resolve the alert")
	})

	t.Run("DoubleAcknowledgeIsRejected", func(t *testing.T) {
		a := newActiveAlert(t)
		require.NoError(t, a.Acknowledge(5))

		alertRepo := &mockAlertRepository{
			GetBySIDFunc: func(ctx context.Context, sid string) (*alert.ProductionAlert, error) {
				return a, nil
			},
		}

		uc := NewAcknowledgeAlertUseCase(alertRepo, &mockLogger{})
		_, err := uc.Execute(ctx, AcknowledgeAlertCommand{AlertSID: a.SID(), OperatorID: 9})

		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("UnknownAlert", func(t *testing.T) {
		alertRepo := &mockAlertRepository{
			GetBySIDFunc: func(ctx context.Context, sid string) (*alert.ProductionAlert, error) {
				return nil, errors.NewNotFoundError("not found")
			},
		}

		uc := NewAcknowledgeAlertUseCase(alertRepo, &mockLogger{})
		_, err := uc.Execute(ctx, AcknowledgeAlertCommand{AlertSID: "alrt-missing", OperatorID: 9})

		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("Validation", func(t *testing.T) {
		uc := NewAcknowledgeAlertUseCase(&mockAlertRepository{}, &mockLogger{})

		_, err := uc.Execute(ctx, AcknowledgeAlertCommand{OperatorID: 9})
		assert.True(t, errors.IsValidationError(err))

		_, err = uc.Execute(ctx, AcknowledgeAlertCommand{AlertSID: "alrt-1"})
		assert.True(t, errors.IsValidationError(err))
	})
}
