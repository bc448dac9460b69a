package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/salesops-hq/backend/internal/models"
)

// HTTPProvider introspects tokens against the upstream session service.
type HTTPProvider struct {
	BaseURL string
	Client  *http.Client
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active      bool   `json:"active"`
	Role        string `json:"role"`
	ReferenceID string `json:"reference_id"`
}

func (p HTTPProvider) Resolve(ctx context.Context, token string) (models.Viewer, error) {
	if p.Client == nil {
		p.Client = &http.Client{Timeout: 10 * time.Second}
	}

	b, _ := json.Marshal(introspectRequest{Token: token})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/sessions/introspect", bytes.NewBuffer(b))
	if err != nil {
		return models.Viewer{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return models.Viewer{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return models.Viewer{}, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.Viewer{}, ErrUnauthorized
	}

	var r introspectResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return models.Viewer{}, err
	}
	if !r.Active {
		return models.Viewer{}, ErrUnauthorized
	}
	return models.Viewer{Role: r.Role, ReferenceID: r.ReferenceID}, nil
}
