package security

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/zy091/iwishneed-sub001/internal/model"
	"github.com/zy091/iwishneed-sub001/internal/ports"
	"github.com/zy091/iwishneed-sub001/internal/util"
)

type contextKey string

const (
	IdentityContextKey contextKey = "identity"

	// MainTokenHeader : заголовок с токеном основного провайдера
	MainTokenHeader = "X-Main-Access-Token"

	allowedHeaders = "authorization, x-client-info, apikey, content-type, x-main-access-token"
)

// CORS : проверка источника, preflight и метода для одного обработчика.
// CORS-заголовки выставляются до любых проверок, поэтому есть и в ответах об ошибках.
func CORS(policy *OriginPolicy, methods ...string) func(http.Handler) http.Handler {
	allowMethods := strings.Join(append(append([]string(nil), methods...), http.MethodOptions), ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			allowOrigin := origin
			if allowOrigin == "" {
				allowOrigin = "*"
			}
			w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
			w.Header().Set("Access-Control-Allow-Methods", allowMethods)
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
			w.Header().Add("Vary", "Origin")

			if !policy.Allowed(origin) {
				zap.L().Info("источник запрещён", zap.String("origin", origin), zap.String("path", r.URL.Path))
				util.HandleError(w, "источник запрещён", http.StatusForbidden)
				return
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			if !methodAllowed(r.Method, methods) {
				util.HandleError(w, "метод не поддерживается", http.StatusMethodNotAllowed)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func methodAllowed(method string, methods []string) bool {
	for _, m := range methods {
		if m == method {
			return true
		}
	}
	return false
}

// MainTokenMiddleware : проверяет токен из X-Main-Access-Token и кладёт личность в контекст
func MainTokenMiddleware(verifier ports.IdentityVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get(MainTokenHeader))

			identity, err := verifier.Verify(r.Context(), token)
			if err != nil {
				if !errors.Is(err, ErrInvalidToken) {
					zap.L().Warn("ошибка проверки токена", zap.Error(err))
				}
				util.HandleError(w, ErrInvalidToken.Error(), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetIdentityFromContext(ctx context.Context) (*model.CallerIdentity, error) {
	identity, ok := ctx.Value(IdentityContextKey).(*model.CallerIdentity)
	if !ok || identity == nil {
		return nil, ErrInvalidToken
	}
	return identity, nil
}
