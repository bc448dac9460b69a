package records

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/salesops-hq/backend/internal/models"
	"github.com/salesops-hq/backend/internal/utils"
)

// HTTPSource pulls the raw activity array from an upstream feed endpoint
// returning a JSON array of loosely-typed rows.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

func (s HTTPSource) Snapshot(ctx context.Context) ([]models.RawActivity, string, error) {
	if s.Client == nil {
		s.Client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/activities", nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", errors.New("records feed error")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	rows, err := decodeSnapshot(body)
	if err != nil {
		return nil, "", err
	}

	version := resp.Header.Get("ETag")
	if version == "" {
		version = fmt.Sprintf("feed-%016x", utils.HashStringToUint64(string(body)))
	}
	return rows, version, nil
}

// decodeSnapshot accepts either a bare JSON array or a {"data": [...]}
// envelope, keeping numbers as json.Number so amounts are not rounded
// through float64 before normalization.
func decodeSnapshot(body []byte) ([]models.RawActivity, error) {
	var rows []models.RawActivity
	if err := unmarshalNumeric(body, &rows); err == nil {
		return rows, nil
	}

	var envelope struct {
		Data []models.RawActivity `json:"data"`
	}
	if err := unmarshalNumeric(body, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return nil, errors.New("records feed: payload has no activity array")
	}
	return envelope.Data, nil
}

func unmarshalNumeric(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(v)
}
