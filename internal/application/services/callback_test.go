package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DanielPopoola/donation-gateway/internal/application"
	"github.com/DanielPopoola/donation-gateway/internal/application/mocks"
	"github.com/DanielPopoola/donation-gateway/internal/application/services"
	"github.com/DanielPopoola/donation-gateway/internal/application/services/testhelpers"
	"github.com/DanielPopoola/donation-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CallbackServiceTestSuite struct {
	suite.Suite
	repo         *testhelpers.MemoryDonationRepository
	mockNotifier *mocks.MockNotifier
	mockArchive  *mocks.MockCallbackArchive
	service      *services.CallbackService
}

func TestCallbackServiceSuite(t *testing.T) {
	suite.Run(t, new(CallbackServiceTestSuite))
}

func (suite *CallbackServiceTestSuite) SetupTest() {
	suite.repo = testhelpers.NewMemoryDonationRepository()
	suite.mockNotifier = mocks.NewMockNotifier(suite.T())
	suite.mockArchive = mocks.NewMockCallbackArchive(suite.T())
	suite.service = services.NewCallbackService(
		suite.repo,
		suite.mockNotifier,
		suite.mockArchive,
		testhelpers.DiscardLogger(),
	)
}

func (suite *CallbackServiceTestSuite) seed(amount string) *domain.Donation {
	d := testhelpers.NewPendingDonation(suite.T(), amount, "tok-1")
	suite.repo.Put(d)
	return d
}

func callbackFor(d *domain.Donation, status, amount string) services.CallbackPayload {
	raw, _ := json.Marshal(map[string]string{"order_id": d.OrderID, "status": status, "amount": amount})
	return services.CallbackPayload{
		OrderID:        d.OrderID,
		StatusCode:     status,
		Amount:         amount,
		TransactionRef: "BANK-77",
		Raw:            raw,
	}
}

// ============================================================================
// HAPPY PATH TESTS
// ============================================================================

func (suite *CallbackServiceTestSuite) Test_HandleCallback_Success() {
	ctx := context.Background()
	t := suite.T()
	d := suite.seed("100")

	suite.mockNotifier.EXPECT().
		NotifyDonationSucceeded(mock.Anything, mock.MatchedBy(func(got *domain.Donation) bool {
			return got.DonationRef == d.DonationRef && got.PaymentStatus == domain.StatusSuccess
		})).
		Return(nil).
		Once()

	result, err := suite.service.HandleCallback(ctx, callbackFor(d, "1", "100.00"))

	require.NoError(t, err)
	assert.False(t, result.Replayed)
	assert.Equal(t, domain.StatusSuccess, result.Donation.PaymentStatus)
	assert.Equal(t, "BANK-77", *result.Donation.ProcessorTransactionRef)

	stored, err := suite.repo.FindByRef(ctx, d.DonationRef)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, stored.PaymentStatus)
	assert.NotNil(t, stored.SettledAt)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(stored.RawResponse, &raw))
	assert.Contains(t, raw, "link")
	assert.Contains(t, raw, "callback")
}

func (suite *CallbackServiceTestSuite) Test_HandleCallback_FailureStatus() {
	t := suite.T()
	d := suite.seed("100")

	result, err := suite.service.HandleCallback(context.Background(), callbackFor(d, "declined", "100"))

	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, result.Donation.PaymentStatus)
}

func (suite *CallbackServiceTestSuite) Test_HandleCallback_ReportedPendingSettlesFailed() {
	t := suite.T()
	d := suite.seed("100")

	result, err := suite.service.HandleCallback(context.Background(), callbackFor(d, "2", ""))

	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, result.Donation.PaymentStatus)
}

func (suite *CallbackServiceTestSuite) Test_HandleCallback_FallsBackToInternalID() {
	t := suite.T()
	d := suite.seed("100")
	payload := callbackFor(d, "failed", "")
	payload.TransactionRef = ""

	result, err := suite.service.HandleCallback(context.Background(), payload)

	require.NoError(t, err)
	assert.Equal(t, *d.ProcessorInternalID, *result.Donation.ProcessorTransactionRef)
}

// ============================================================================
// EDGE CASE TESTS
// ============================================================================

func (suite *CallbackServiceTestSuite) Test_HandleCallback_Replay_LeavesRecordUnchanged() {
	ctx := context.Background()
	t := suite.T()
	d := suite.seed("100")

	suite.mockNotifier.EXPECT().NotifyDonationSucceeded(mock.Anything, mock.Anything).Return(nil).Once()

	_, err := suite.service.HandleCallback(ctx, callbackFor(d, "1", "100"))
	require.NoError(t, err)
	before, err := suite.repo.FindByRef(ctx, d.DonationRef)
	require.NoError(t, err)

	replay := callbackFor(d, "0", "100")
	replay.TransactionRef = "BANK-OTHER"
	result, err := suite.service.HandleCallback(ctx, replay)

	require.NoError(t, err)
	assert.True(t, result.Replayed)
	assert.Equal(t, domain.StatusSuccess, result.Donation.PaymentStatus)

	after, err := suite.repo.FindByRef(ctx, d.DonationRef)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func (suite *CallbackServiceTestSuite) Test_HandleCallback_AmountMismatch_SettlesFailed() {
	ctx := context.Background()
	t := suite.T()
	d := suite.seed("100")

	result, err := suite.service.HandleCallback(ctx, callbackFor(d, "1", "50"))

	require.NoError(t, err)
	assert.True(t, result.AmountMismatch)
	assert.Equal(t, domain.StatusFailed, result.Donation.PaymentStatus)

	stored, err := suite.repo.FindByRef(ctx, d.DonationRef)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, stored.PaymentStatus)
}

func (suite *CallbackServiceTestSuite) Test_HandleCallback_UnparseableAmountIsMismatch() {
	t := suite.T()
	d := suite.seed("100")

	result, err := suite.service.HandleCallback(context.Background(), callbackFor(d, "success", "one hundred"))

	require.NoError(t, err)
	assert.True(t, result.AmountMismatch)
	assert.Equal(t, domain.StatusFailed, result.Donation.PaymentStatus)
}

func (suite *CallbackServiceTestSuite) Test_HandleCallback_UnknownOrder() {
	t := suite.T()

	_, err := suite.service.HandleCallback(context.Background(), services.CallbackPayload{OrderID: "ORD-NOPE", StatusCode: "1"})

	svcErr, ok := application.IsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, application.ErrCodeNotFound, svcErr.Code)
	assert.Zero(t, suite.repo.Len())
}

func (suite *CallbackServiceTestSuite) Test_HandleCallback_MissingOrderID() {
	t := suite.T()

	_, err := suite.service.HandleCallback(context.Background(), services.CallbackPayload{StatusCode: "1"})

	svcErr, ok := application.IsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, application.ErrCodeInvalidCallback, svcErr.Code)
}

func (suite *CallbackServiceTestSuite) Test_HandleCallback_DoesNotArchiveUnknownOrders() {
	t := suite.T()

	for _, orderID := range []string{"", "ORD-NOPE"} {
		_, err := suite.service.HandleCallback(context.Background(), services.CallbackPayload{
			OrderID:     orderID,
			StatusCode:  "1",
			Body:        []byte(`{"order_id":"` + orderID + `","status":"1"}`),
			ContentType: "application/json",
		})
		require.Error(t, err, orderID)
	}

	suite.mockArchive.AssertNotCalled(t, "Archive", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CallbackServiceTestSuite) Test_HandleCallback_ArchivesBody() {
	t := suite.T()
	d := suite.seed("100")
	payload := callbackFor(d, "0", "")
	payload.Body = []byte("order_id=" + d.OrderID + "&status=0")
	payload.ContentType = "application/x-www-form-urlencoded"

	suite.mockArchive.EXPECT().
		Archive(mock.Anything, d.OrderID, "application/x-www-form-urlencoded", payload.Body).
		Return(errors.New("bucket unavailable")).
		Once()

	result, err := suite.service.HandleCallback(context.Background(), payload)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, result.Donation.PaymentStatus)
}

func (suite *CallbackServiceTestSuite) Test_HandleCallback_NotifierErrorDoesNotFail() {
	t := suite.T()
	d := suite.seed("100")

	suite.mockNotifier.EXPECT().
		NotifyDonationSucceeded(mock.Anything, mock.Anything).
		Return(errors.New("smtp down")).
		Once()

	result, err := suite.service.HandleCallback(context.Background(), callbackFor(d, "paid", ""))

	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, result.Donation.PaymentStatus)
}

func TestMapCallbackStatus(t *testing.T) {
	tests := []struct {
		code, status string
		want         domain.PaymentStatus
	}{
		{"1", "", domain.StatusSuccess},
		{"", "SUCCESS", domain.StatusSuccess},
		{"", " approved ", domain.StatusSuccess},
		{"", "captured", domain.StatusSuccess},
		{"", "paid", domain.StatusSuccess},
		{"2", "pending", domain.StatusFailed},
		{"0", "", domain.StatusFailed},
		{"", "", domain.StatusFailed},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, services.MapCallbackStatus(tt.code, tt.status), "%q/%q", tt.code, tt.status)
	}
}
