package security

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/zy091/iwishneed-sub001/config"
	"github.com/zy091/iwishneed-sub001/internal/model"
)

const userInfoPath = "/auth/v1/user"

// MainAuthVerifier : проверяет токен одним запросом к /auth/v1/user основного провайдера.
// Повторов нет.
type MainAuthVerifier struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewMainAuthVerifier(cfg *config.MainAuthConfig, httpClient *http.Client) *MainAuthVerifier {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second}
	}

	return &MainAuthVerifier{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}
}

type userInfoResponse struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
	AppMetadata  map[string]any `json:"app_metadata"`
}

func (v *MainAuthVerifier) Verify(ctx context.Context, token string) (*model.CallerIdentity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+userInfoPath, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.apiKey)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		zap.L().Warn("[MainAuthVerifier] провайдер недоступен", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		zap.L().Debug("[MainAuthVerifier] токен отклонён", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: статус провайдера %d", ErrInvalidToken, resp.StatusCode)
	}

	var user userInfoResponse
	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: некорректный ответ провайдера: %v", ErrInvalidToken, err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: в ответе провайдера нет id", ErrInvalidToken)
	}

	return &model.CallerIdentity{
		ID:       user.ID,
		Email:    user.Email,
		RoleHint: roleHint(user.UserMetadata, user.AppMetadata),
	}, nil
}

// roleHint : берёт первое присутствующее значение role_id / roleId
// из user_metadata, затем из app_metadata. Нечисловое значение даёт nil.
func roleHint(locations ...map[string]any) *int {
	for _, metadata := range locations {
		for _, key := range []string{"role_id", "roleId"} {
			raw, ok := metadata[key]
			if !ok || raw == nil {
				continue
			}
			return parseRole(raw)
		}
	}
	return nil
}

func parseRole(raw any) *int {
	var text string
	switch value := raw.(type) {
	case json.Number:
		text = value.String()
	case string:
		text = strings.TrimSpace(value)
	case float64:
		text = strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return nil
	}

	if n, err := strconv.Atoi(text); err == nil {
		return &n
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return nil
	}
	n := int(f)
	return &n
}
