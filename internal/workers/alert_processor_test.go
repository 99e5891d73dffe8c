// internal/workers/alert_processor_test.go
package workers_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fusioncl/inventoryms/internal/workers"
	"github.com/fusioncl/inventoryms/test/helpers"
	"github.com/fusioncl/inventoryms/test/mocks"
)

func TestAlertProcessor_SendLowStockAlert(t *testing.T) {
	tests := []struct {
		name          string
		payload       []byte
		setupMocks    func(*mocks.MockMailer)
		expectedError bool
	}{
		{
			name: "renders_and_sends_alert",
			payload: mustMarshal(t, workers.LowStockAlertPayload{
				ProductName:  "Widget",
				SupplierName: "Acme Foods",
				Quantity:     4,
			}),
			setupMocks: func(mailer *mocks.MockMailer) {
				mailer.EXPECT().
					Send(gomock.Any(),
						"t.solesi@fusioncl.com",
						"Low Stock Alert",
						"The product 'Widget' supplied by 'Acme Foods' has low stock.\nCurrent quantity: 4.").
					Return(nil)
			},
		},
		{
			name: "delivery_failure_is_not_retried",
			payload: mustMarshal(t, workers.LowStockAlertPayload{
				ProductName:  "Widget",
				SupplierName: "Acme Foods",
				Quantity:     0,
			}),
			setupMocks: func(mailer *mocks.MockMailer) {
				mailer.EXPECT().
					Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("smtp unreachable"))
			},
		},
		{
			name:          "rejects_malformed_payload",
			payload:       []byte("{not json"),
			setupMocks:    func(*mocks.MockMailer) {},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockMailer := mocks.NewMockMailer(ctrl)
			tt.setupMocks(mockMailer)

			processor := workers.NewAlertProcessor(mockMailer, helpers.TestConfig(), helpers.TestLogger())
			task := asynq.NewTask(workers.TypeLowStockAlert, tt.payload)

			err := processor.SendLowStockAlert(context.Background(), task)

			if tt.expectedError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
