package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"stream-token-backend/internal/config"
	"stream-token-backend/internal/models"
)

// fakeProcessor records every charge authorization request
type fakeProcessor struct {
	mu     sync.Mutex
	calls  []models.ChargeAuthorizationParams
	err    error
	secret func(params *models.ChargeAuthorizationParams) string
}

func (p *fakeProcessor) CreateChargeAuthorization(ctx context.Context, params *models.ChargeAuthorizationParams) (*models.ChargeAuthorization, error) {
	p.mu.Lock()
	p.calls = append(p.calls, *params)
	p.mu.Unlock()

	if p.err != nil {
		return nil, p.err
	}
	secret := "pi_test_secret"
	if p.secret != nil {
		secret = p.secret(params)
	}
	return &models.ChargeAuthorization{ID: "pi_test", ClientSecret: secret}, nil
}

func (p *fakeProcessor) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

// fakePlatform records the order of platform operations
type fakePlatform struct {
	mu        sync.Mutex
	ops       []string
	upserted  [][]string
	upsertErr error
	tokenErr  error
}

func (p *fakePlatform) UpsertIdentities(ctx context.Context, userIDs []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ops = append(p.ops, "upsert")
	p.upserted = append(p.upserted, append([]string(nil), userIDs...))
	return p.upsertErr
}

func (p *fakePlatform) IssueToken(ctx context.Context, userID string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ops = append(p.ops, "token:"+userID)
	if p.tokenErr != nil {
		return "", p.tokenErr
	}
	return "token-for-" + userID, nil
}

func stripeConfig() config.StripeConfig {
	return config.StripeConfig{SecretKey: "sk_test_secret", DefaultCurrency: "aed"}
}

func streamConfig() config.StreamConfig {
	return config.StreamConfig{APIKey: "key", APISecret: "stream_secret_value"}
}

func decode(t *testing.T, body string) *models.PaymentIntentRequest {
	t.Helper()
	req, err := models.DecodePaymentIntentRequest([]byte(body))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	return req
}

func TestCreatePaymentIntent(t *testing.T) {
	ctx := context.Background()

	t.Run("ForwardsRoundedAmount", func(t *testing.T) {
		processor := &fakeProcessor{}
		service := NewPaymentIntentService(stripeConfig(), processor)

		resp, err := service.CreatePaymentIntent(ctx, decode(t, `{"amount": 10.6, "currency": "AED", "requestId": "r1", "biddingId": "b1", "userId": "u1"}`))
		if err != nil {
			t.Fatalf("CreatePaymentIntent failed: %v", err)
		}
		if resp.ClientSecret != "pi_test_secret" {
			t.Errorf("Expected client secret pi_test_secret, got %s", resp.ClientSecret)
		}

		if processor.callCount() != 1 {
			t.Fatalf("Expected 1 processor call, got %d", processor.callCount())
		}
		params := processor.calls[0]
		if params.Amount != 11 {
			t.Errorf("Expected amount 11, got %d", params.Amount)
		}
		if params.Currency != "aed" {
			t.Errorf("Expected currency aed, got %s", params.Currency)
		}
		expected := models.ChargeMetadata{RequestID: "r1", BiddingID: "b1", UserID: "u1"}
		if params.Metadata != expected {
			t.Errorf("Expected metadata %+v, got %+v", expected, params.Metadata)
		}
	})

	t.Run("DefaultsCurrencyAndMetadata", func(t *testing.T) {
		processor := &fakeProcessor{}
		service := NewPaymentIntentService(stripeConfig(), processor)

		if _, err := service.CreatePaymentIntent(ctx, decode(t, `{"amount": 500}`)); err != nil {
			t.Fatalf("CreatePaymentIntent failed: %v", err)
		}

		params := processor.calls[0]
		if params.Currency != "aed" {
			t.Errorf("Expected default currency aed, got %s", params.Currency)
		}
		for key, value := range params.Metadata.Map() {
			if value != "" {
				t.Errorf("Expected empty metadata %s, got %q", key, value)
			}
		}
		if len(params.Metadata.Map()) != 3 {
			t.Errorf("Expected 3 metadata keys, got %d", len(params.Metadata.Map()))
		}
	})

	t.Run("RejectsInvalidAmountsWithoutCallingProcessor", func(t *testing.T) {
		for _, body := range []string{`{}`, `{"amount": 0}`, `{"amount": -3}`, `{"amount": 0.2}`, ``} {
			processor := &fakeProcessor{}
			service := NewPaymentIntentService(stripeConfig(), processor)

			_, err := service.CreatePaymentIntent(ctx, decode(t, body))
			if KindOf(err) != KindInvalidInput {
				t.Errorf("%q: expected invalid input, got %v", body, err)
			}
			if processor.callCount() != 0 {
				t.Errorf("%q: processor should not be called", body)
			}
		}
	})

	t.Run("Misconfigured", func(t *testing.T) {
		processor := &fakeProcessor{}
		service := NewPaymentIntentService(config.StripeConfig{}, processor)

		_, err := service.CreatePaymentIntent(ctx, decode(t, `{"amount": 100}`))
		classified := AsError(err)
		if classified.Kind != KindServerMisconfigured {
			t.Fatalf("Expected misconfigured, got %v", err)
		}
		if classified.Config[config.EnvStripeSecretKey] != "missing" {
			t.Errorf("Expected %s=missing, got %v", config.EnvStripeSecretKey, classified.Config)
		}
		if processor.callCount() != 0 {
			t.Error("processor should not be called")
		}
	})

	t.Run("PassesProcessorMessageThrough", func(t *testing.T) {
		processor := &fakeProcessor{err: errors.New("Currency xyz is not enabled for this account")}
		service := NewPaymentIntentService(stripeConfig(), processor)

		_, err := service.CreatePaymentIntent(ctx, decode(t, `{"amount": 100, "currency": "XYZ"}`))
		classified := AsError(err)
		if classified.Kind != KindUpstreamFailure {
			t.Fatalf("Expected upstream failure, got %v", err)
		}
		if classified.Message != "Currency xyz is not enabled for this account" {
			t.Errorf("Expected processor message, got %s", classified.Message)
		}
	})
}

func TestIssueToken(t *testing.T) {
	ctx := context.Background()

	t.Run("UpsertsIdentitiesBeforeToken", func(t *testing.T) {
		platform := &fakePlatform{}
		service := NewTokenService(streamConfig(), platform)

		resp, err := service.IssueToken(ctx, models.TokenRequestFromQuery(map[string]string{
			"userId":  "u1",
			"members": "u2,u1, ,u3",
		}))
		if err != nil {
			t.Fatalf("IssueToken failed: %v", err)
		}
		if resp.Token != "token-for-u1" {
			t.Errorf("Expected token scoped to u1, got %s", resp.Token)
		}

		expectedOps := []string{"upsert", "token:u1"}
		if fmt.Sprint(platform.ops) != fmt.Sprint(expectedOps) {
			t.Errorf("Expected ops %v, got %v", expectedOps, platform.ops)
		}
		if fmt.Sprint(platform.upserted[0]) != fmt.Sprint([]string{"u1", "u2", "u3"}) {
			t.Errorf("Expected upsert of [u1 u2 u3], got %v", platform.upserted[0])
		}
	})

	t.Run("MissingUserID", func(t *testing.T) {
		platform := &fakePlatform{}
		service := NewTokenService(streamConfig(), platform)

		_, err := service.IssueToken(ctx, models.TokenRequestFromQuery(map[string]string{"members": "u2"}))
		if KindOf(err) != KindInvalidInput {
			t.Errorf("Expected invalid input, got %v", err)
		}
		if len(platform.ops) != 0 {
			t.Errorf("Platform should not be called, got %v", platform.ops)
		}
	})

	t.Run("Misconfigured", func(t *testing.T) {
		service := NewTokenService(config.StreamConfig{APIKey: "key"}, &fakePlatform{})

		_, err := service.IssueToken(ctx, &models.TokenRequest{UserID: "u1"})
		classified := AsError(err)
		if classified.Kind != KindServerMisconfigured {
			t.Fatalf("Expected misconfigured, got %v", err)
		}
		if classified.Config[config.EnvStreamAPISecret] != "missing" || classified.Config[config.EnvStreamAPIKey] != "set" {
			t.Errorf("Unexpected diagnostics: %v", classified.Config)
		}
	})

	t.Run("UpsertFailureStopsTokenIssuance", func(t *testing.T) {
		platform := &fakePlatform{upsertErr: errors.New("signature stream_secret_value rejected")}
		service := NewTokenService(streamConfig(), platform)

		_, err := service.IssueToken(ctx, &models.TokenRequest{UserID: "u1"})
		classified := AsError(err)
		if classified.Kind != KindUpstreamFailure {
			t.Fatalf("Expected upstream failure, got %v", err)
		}
		if classified.Message != tokenFailedMessage {
			t.Errorf("Expected generic message, got %s", classified.Message)
		}
		if strings.Contains(classified.Message, "stream_secret_value") {
			t.Error("Message leaked upstream detail")
		}
		if len(platform.ops) != 1 {
			t.Errorf("Expected only the upsert call, got %v", platform.ops)
		}
	})

	t.Run("TokenFailure", func(t *testing.T) {
		platform := &fakePlatform{tokenErr: errors.New("boom")}
		service := NewTokenService(streamConfig(), platform)

		_, err := service.IssueToken(ctx, &models.TokenRequest{UserID: "u1"})
		if AsError(err).Message != tokenFailedMessage {
			t.Errorf("Expected generic message, got %v", err)
		}
	})
}

func TestConcurrentPaymentIntentsAreIsolated(t *testing.T) {
	processor := &fakeProcessor{secret: func(params *models.ChargeAuthorizationParams) string {
		return fmt.Sprintf("secret-%s-%d", params.Metadata.BiddingID, params.Amount)
	}}
	service := NewPaymentIntentService(stripeConfig(), processor)

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := fmt.Sprintf(`{"amount": %d, "biddingId": "b%d"}`, i, i)
			req, err := models.DecodePaymentIntentRequest([]byte(body))
			if err != nil {
				errs <- err
				return
			}

			resp, err := service.CreatePaymentIntent(context.Background(), req)
			if err != nil {
				errs <- err
				return
			}
			if expected := fmt.Sprintf("secret-b%d-%d", i, i); resp.ClientSecret != expected {
				errs <- fmt.Errorf("expected %s, got %s", expected, resp.ClientSecret)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestKindStatusCodes(t *testing.T) {
	tests := map[Kind]int{
		KindInvalidInput:        400,
		KindMethodNotAllowed:    405,
		KindServerMisconfigured: 500,
		KindUpstreamFailure:     500,
		KindInternal:            500,
	}
	for kind, expected := range tests {
		if got := kind.StatusCode(); got != expected {
			t.Errorf("%s: expected %d, got %d", kind, expected, got)
		}
	}

	if KindOf(errors.New("plain")) != KindInternal {
		t.Error("Unclassified errors should be internal")
	}
	wrapped := fmt.Errorf("context: %w", NewInvalidInputError("bad", nil))
	if KindOf(wrapped) != KindInvalidInput {
		t.Error("Wrapped classified errors should keep their kind")
	}
}
