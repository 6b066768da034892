package e2e

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/DanielPopoola/donation-gateway/internal/application"
	"github.com/DanielPopoola/donation-gateway/internal/application/services"
	"github.com/DanielPopoola/donation-gateway/internal/application/services/testhelpers"
	"github.com/DanielPopoola/donation-gateway/internal/config"
	"github.com/DanielPopoola/donation-gateway/internal/infrastructure/archive"
	"github.com/DanielPopoola/donation-gateway/internal/infrastructure/notification"
	"github.com/DanielPopoola/donation-gateway/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/donation-gateway/internal/infrastructure/processor"
	"github.com/DanielPopoola/donation-gateway/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/donation-gateway/internal/worker"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const adminKey = "e2e-admin"

type E2ETestSuite struct {
	suite.Suite
	testDB     *testhelpers.TestDatabase
	processor  *fakeProcessor
	procServer *httptest.Server
	gateway    *httptest.Server
	reconciler *worker.Reconciler
	client     *TestClient
}

func TestE2ESuite(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}

func (suite *E2ETestSuite) SetupSuite() {
	t := suite.T()
	logger := testhelpers.DiscardLogger()

	suite.testDB = testhelpers.SetupTestDatabase(t)
	suite.processor = newFakeProcessor()
	suite.procServer = httptest.NewServer(suite.processor)

	repo := postgres.NewDonationRepository(suite.testDB.DB.Pool)
	client := processor.NewHTTPClient(config.ProcessorConfig{
		BaseURL:    suite.procServer.URL,
		MerchantID: "M-E2E",
		Timeout:    5 * time.Second,
	}, "https://gateway.example/api/v1/donations/callback", logger)
	tokens := processor.NewTokenCache(client, application.Credentials{Username: "u", Password: "p", MerchantID: "M-E2E"},
		config.TokenConfig{SafetyMargin: time.Hour, DefaultTTL: 24 * time.Hour}, logger)
	notifier := notification.NewLogNotifier(logger)

	verify := services.NewVerifyService(repo, client, notifier, logger)
	h := handlers.NewHandlers(
		services.NewInitiateService(repo, client, tokens, services.NewTimestampReferences(), decimal.NewFromInt(100000), logger),
		services.NewCallbackService(repo, notifier, archive.Nop{}, logger),
		verify,
		services.NewQueryService(repo),
		suite.testDB.DB,
		handlers.Options{},
		logger,
	)
	suite.gateway = httptest.NewServer(handlers.NewRouter(h, handlers.RouterConfig{
		RequestTimeout:   10 * time.Second,
		InitiateRequests: 100,
		StatusRequests:   100,
		RateWindow:       time.Minute,
		AdminKey:         adminKey,
	}))

	retrying := services.NewVerifyService(repo, processor.NewRetryStatusClient(client, config.RetryConfig{BaseDelay: 1, MaxRetries: 2}), notifier, logger)
	suite.reconciler = worker.NewReconciler(repo, retrying, time.Minute, 50, -time.Minute, 10, logger)

	suite.client = NewTestClient(suite.gateway.URL)
}

func (suite *E2ETestSuite) TearDownSuite() {
	if suite.gateway != nil {
		suite.gateway.Close()
	}
	if suite.procServer != nil {
		suite.procServer.Close()
	}
	if suite.testDB != nil {
		suite.testDB.Cleanup(suite.T())
	}
}

func (suite *E2ETestSuite) SetupTest() {
	suite.testDB.CleanTables(suite.T())
	suite.processor.setFailLinks(false)
}

func (suite *E2ETestSuite) initiate(amount string) (ref, orderID string) {
	t := suite.T()
	resp := suite.client.Initiate(t, amount)
	require.Equal(t, http.StatusCreated, resp.StatusCode, resp.Body)
	return resp.Body["donationRef"].(string), resp.Body["orderId"].(string)
}

func (suite *E2ETestSuite) TestDonation_CallbackSettlesSuccess() {
	t := suite.T()
	ref, orderID := suite.initiate("1")

	status := suite.client.Status(t, ref)
	require.Equal(t, http.StatusOK, status.StatusCode)
	assert.Equal(t, "PENDING", status.Body["status"])
	assert.Nil(t, status.Body["transactionRef"])

	cb := suite.client.Callback(t, url.Values{
		"order_id": {orderID},
		"status":   {"1"},
		"amount":   {"1.00"},
		"bank_ref": {"BANK-77"},
	})
	require.Equal(t, http.StatusOK, cb.StatusCode, cb.Body)
	assert.Equal(t, "SUCCESS", cb.Body["status"])
	assert.Equal(t, false, cb.Body["replayed"])

	status = suite.client.Status(t, ref)
	assert.Equal(t, "SUCCESS", status.Body["status"])
	assert.Equal(t, "1.00", status.Body["amount"])
	assert.Equal(t, "BANK-77", status.Body["transactionRef"])

	replay := suite.client.Callback(t, url.Values{"order_id": {orderID}, "status": {"0"}})
	require.Equal(t, http.StatusOK, replay.StatusCode)
	assert.Equal(t, "SUCCESS", replay.Body["status"])
	assert.Equal(t, true, replay.Body["replayed"])
}

func (suite *E2ETestSuite) TestDonation_AmountMismatchFails() {
	t := suite.T()
	ref, orderID := suite.initiate("100")

	cb := suite.client.Callback(t, url.Values{"order_id": {orderID}, "status": {"1"}, "amount": {"50"}})
	require.Equal(t, http.StatusOK, cb.StatusCode)

	status := suite.client.Status(t, ref)
	assert.Equal(t, "FAILED", status.Body["status"])
}

func (suite *E2ETestSuite) TestDonation_VerifyAgainstProcessor() {
	t := suite.T()
	ref, orderID := suite.initiate("25.50")

	assert.Equal(t, http.StatusUnauthorized, suite.client.Verify(t, ref, "wrong").StatusCode)

	pending := suite.client.Verify(t, ref, adminKey)
	require.Equal(t, http.StatusOK, pending.StatusCode)
	assert.Equal(t, "PENDING", pending.Body["status"])
	assert.Equal(t, false, pending.Body["updated"])

	suite.processor.setStatus("tok-"+orderID, "1")

	settled := suite.client.Verify(t, ref, adminKey)
	require.Equal(t, http.StatusOK, settled.StatusCode)
	assert.Equal(t, "SUCCESS", settled.Body["status"])
	assert.Equal(t, true, settled.Body["updated"])
	assert.Equal(t, "BANK-tok-"+orderID, settled.Body["transactionRef"])
	assert.NotNil(t, settled.Body["processorStatus"])

	late := suite.client.Callback(t, url.Values{"order_id": {orderID}, "status": {"0"}})
	assert.Equal(t, true, late.Body["replayed"])
	assert.Equal(t, "SUCCESS", suite.client.Status(t, ref).Body["status"])
}

func (suite *E2ETestSuite) TestDonation_LinkFailureIsRecordedAsFailed() {
	t := suite.T()
	suite.processor.setFailLinks(true)

	resp := suite.client.Initiate(t, "10")
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, application.ErrCodeProcessorUnavailable, resp.Body["code"])
	assert.NotContains(t, resp.Body["error"], "merchant disabled")

	ref, _ := resp.Body["donationRef"].(string)
	require.NotEmpty(t, ref)

	status := suite.client.Status(t, ref)
	assert.Equal(t, "FAILED", status.Body["status"])
	assert.Equal(t, "UNASSIGNED", status.Body["transactionRef"])
}

func (suite *E2ETestSuite) TestDonation_Validation() {
	t := suite.T()
	resp := suite.client.do(t, http.MethodPost, "/api/v1/donations", "application/json",
		[]byte(`{"name":"","email":"nope","phone":"12","amount":"-1"}`), nil)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Len(t, resp.Body["errors"], 4)
}

func (suite *E2ETestSuite) TestReconciler_SettlesAbandonedDonation() {
	t := suite.T()
	ref, orderID := suite.initiate("5")
	suite.processor.setStatus("tok-"+orderID, "3")

	assert.Equal(t, 1, suite.reconciler.RunOnce(context.Background()))
	assert.Equal(t, "FAILED", suite.client.Status(t, ref).Body["status"])
	assert.Equal(t, 0, suite.reconciler.RunOnce(context.Background()))
}
