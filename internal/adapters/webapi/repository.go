package webapi

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/checkers/internal/domain"
	"github.com/pkg/errors"
)

const (
	clientTimeout       = 5 * time.Second
	checkTurnEndpoint   = "/checkTurn"
	healthCheckEndpoint = "/health"
	boardImageEndpoint  = "/game/board.png"
)

// repository polls the HTTP side of a server on behalf of one session.
type repository struct {
	cli     *http.Client
	addr    string
	session string
}

func New(addr, session string) repository {
	return repository{
		cli:     &http.Client{Timeout: clientTimeout},
		addr:    addr,
		session: session,
	}
}

func (r repository) CheckTurn(ctx context.Context) (domain.Notice, error) {
	resp, err := r.do(ctx, http.MethodPost, checkTurnEndpoint, []byte("{}"))
	if err != nil {
		return domain.Notice{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	var notice domain.Notice
	if err := jsoniter.NewDecoder(resp.Body).Decode(&notice); err != nil {
		return domain.Notice{}, errors.WithMessage(err, "decode json response body")
	}
	return notice, nil
}

// WaitForTurn polls CheckTurn every period until it reports true.
func (r repository) WaitForTurn(ctx context.Context, period time.Duration) error {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		notice, err := r.CheckTurn(ctx)
		if err != nil {
			return err
		}
		if notice.Text == "true" {
			return nil
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (r repository) HealthCheck(ctx context.Context) (*domain.HealthResponse, error) {
	resp, err := r.do(ctx, http.MethodGet, healthCheckEndpoint, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	result := new(domain.HealthResponse)
	if err := jsoniter.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, errors.WithMessage(err, "decode json response body")
	}
	return result, nil
}

func (r repository) BoardImage(ctx context.Context) ([]byte, error) {
	resp, err := r.do(ctx, http.MethodGet, boardImageEndpoint, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithMessage(err, "read response body")
	}
	return data, nil
}

func (r repository) do(ctx context.Context, method, endpoint string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.addr+endpoint, reader)
	if err != nil {
		return nil, errors.WithMessagef(err, "new %s request", method)
	}
	req.Header.Set(domain.ClientUuidHeader, r.session)
	resp, err := r.cli.Do(req)
	if err != nil {
		return nil, errors.WithMessagef(err, "call http endpoint '%s'", endpoint)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, errors.Errorf("unexpected response status '%s'", resp.Status)
	}
	return resp, nil
}
