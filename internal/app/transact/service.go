package transact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"fulfillment/internal/app/apperr"
	"fulfillment/internal/app/metrics"
)

// Trace header names expected by the downstream transaction services.
const (
	headerAITID              = "ait-id"
	headerBusinessTaxonomyID = "business-taxonomy-id"
	headerCorrelationID      = "correlation-id"
)

// Config for the downstream transaction client. Zero values fall back to the
// documented defaults.
type Config struct {
	RecordURL      string
	ReservationURL string
	TransferURL    string
	CommitURL      string

	AITID          string
	Attempts       int
	BackoffMin     time.Duration
	BackoffMax     time.Duration
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
}

// Service calls the four downstream transaction operations. Each call is
// retried on connectivity-class failures only; an unexpected status or an
// empty body is terminal on the first attempt.
type Service struct {
	config     Config
	httpClient *http.Client
	logger     zerolog.Logger
}

func (s *Service) LoggerComponent() string {
	return "Transact.Service"
}

func NewService(cfg Config, opts ...ServiceOption) (*Service, error) {
	if cfg.Attempts <= 0 {
		cfg.Attempts = 3
	}
	if cfg.BackoffMin <= 0 {
		cfg.BackoffMin = 100 * time.Millisecond
	}
	if cfg.BackoffMax < cfg.BackoffMin {
		cfg.BackoffMax = 500 * time.Millisecond
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = time.Second
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = time.Second
	}

	s := &Service{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: cfg.ConnectTimeout}).DialContext,
			},
		},
		logger: log.Logger,
	}

	for _, o := range opts {
		o(s)
	}

	s.logger = s.logger.With().Str("component", s.LoggerComponent()).Logger()

	return s, nil
}

type ServiceOption func(*Service)

func WithLogger(l zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = l
	}
}

func WithHTTPClient(c *http.Client) ServiceOption {
	return func(s *Service) {
		s.httpClient = c
	}
}

func (s *Service) RecordTransaction(ctx context.Context, trace Trace, in *TransactionRequest) (*TransactionResponse, error) {
	return call[TransactionResponse](ctx, s, "record_transaction", s.config.RecordURL, trace, in)
}

func (s *Service) RecordReservation(ctx context.Context, trace Trace, in *ReservationRequest) (*ReservationResponse, error) {
	return call[ReservationResponse](ctx, s, "record_reservation", s.config.ReservationURL, trace, in)
}

func (s *Service) TransferAndTransact(ctx context.Context, trace Trace, in *TransferAndTransactRequest) (*TransferAndTransactResponse, error) {
	return call[TransferAndTransactResponse](ctx, s, "transfer_and_transact", s.config.TransferURL, trace, in)
}

func (s *Service) CommitReservation(ctx context.Context, trace Trace, in *CommitReservationRequest) (*CommitReservationResponse, error) {
	return call[CommitReservationResponse](ctx, s, "commit_reservation", s.config.CommitURL, trace, in)
}

// call POSTs one typed request and decodes the typed payload out of the timed
// response wrapper. One helper serves all four operations.
func call[R any](ctx context.Context, s *Service, operation, url string, trace Trace, in interface{}) (*R, error) {
	l := s.logger.With().
		Str("operation", operation).
		Str("url", url).
		Str("correlation_id", trace.CorrelationID).
		Logger()

	rawJSON, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("json encode: %w", err)
	}

	started := time.Now()
	defer func() {
		metrics.DownstreamSeconds.WithLabelValues(operation).Observe(time.Since(started).Seconds())
	}()

	var lastErr error
	for attempt := 1; attempt <= s.config.Attempts; attempt++ {
		if attempt > 1 {
			// The worker blocks for the whole backoff window; there is no
			// cancellation mid-backoff beyond attempt exhaustion.
			time.Sleep(s.backoff())
		}

		res, err := s.post(ctx, url, trace, rawJSON)
		if err != nil {
			l.Warn().Err(err).Int("attempt", attempt).Msg("Service call failed")
			lastErr = err
			continue
		}

		body := readAll(res.Body)
		if res.StatusCode != http.StatusCreated || len(body) == 0 {
			l.Error().Int("http_status", res.StatusCode).Str("http_body", string(body)).Msg("Unexpected service response")
			return nil, apperr.Terminal(fmt.Errorf("unexpected response from %s: status %d", url, res.StatusCode))
		}

		var timed TimedResponse[R]
		if err := json.Unmarshal(body, &timed); err != nil {
			return nil, fmt.Errorf("json decode: %w", err)
		}
		if timed.Payload == nil {
			return nil, apperr.Terminal(fmt.Errorf("missing payload in response from %s", url))
		}

		l.Debug().Int64("service_time_ms", timed.ServiceTimeElapsedMS).Int("attempt", attempt).Msg("Service call done")
		return timed.Payload, nil
	}

	l.Warn().Err(lastErr).Msg("Retries exhausted")
	return nil, apperr.Transient(fmt.Errorf("exhausted %d attempts for POST %s: %w", s.config.Attempts, url, lastErr))
}

func (s *Service) post(ctx context.Context, url string, trace Trace, rawJSON []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(rawJSON))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	req.Header.Add(headerAITID, s.config.AITID)
	req.Header.Add(headerBusinessTaxonomyID, trace.BusinessTaxonomyID)
	req.Header.Add(headerCorrelationID, trace.CorrelationID)

	res, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	return res, nil
}

// backoff picks a uniform random delay within the configured window.
func (s *Service) backoff() time.Duration {
	window := s.config.BackoffMax - s.config.BackoffMin
	if window <= 0 {
		return s.config.BackoffMin
	}
	return s.config.BackoffMin + time.Duration(rand.Int63n(int64(window)+1))
}
