package coresso

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/prefeitura-sp/coresso-portal/internal/domain/auth"
)

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Config{APIToken: "tok"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CORESSO_API_URL")

	_, err = NewClient(Config{BaseURL: "https://autentica.example"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CORESSO_API_TOKEN")

	client, err := NewClient(Config{BaseURL: "https://autentica.example/", APIToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "https://autentica.example", client.baseURL, "trailing slash is trimmed")
}

func TestClient_Post_Success(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, AuthenticatePath, r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"nome": "Maria da Silva",
			"login": "7654321",
			"email": "maria@sme.prefeitura.sp.gov.br",
			"visoes": ["SME"],
			"perfis_por_sistema": [{"sistema": 1000, "perfis": ["Professor"]}]
		}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL, APIToken: "s3cret"})
	require.NoError(t, err)

	resp, err := client.Post(context.Background(), AuthenticatePath, map[string]string{
		"login": "7654321",
		"senha": "s3nha",
	})

	require.NoError(t, err)
	assert.Equal(t, "Token s3cret", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, map[string]string{"login": "7654321", "senha": "s3nha"}, gotBody)

	assert.Equal(t, "Maria da Silva", resp.Nome)
	assert.Equal(t, "7654321", resp.Login)
	assert.Equal(t, []string{"SME"}, resp.Visoes)
	require.Len(t, resp.PerfisPorSistema, 1)
	assert.Equal(t, []string{"Professor"}, resp.PerfisPorSistema[0].Perfis)
}

func TestClient_Post_NormalizesFailure(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
		wantOpID   string
	}{
		{
			name:   "401 with empty body",
			status: http.StatusUnauthorized,
			body:   "",
		},
		{
			name:       "404 with detail",
			status:     http.StatusNotFound,
			body:       `{"detail": "Usuário não encontrado", "operation_id": "op-9"}`,
			wantDetail: "Usuário não encontrado",
			wantOpID:   "op-9",
		},
		{
			name:   "500 with non-JSON body",
			status: http.StatusInternalServerError,
			body:   "<html>gateway error</html>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, err := NewClient(Config{BaseURL: server.URL, APIToken: "tok"})
			require.NoError(t, err)

			resp, err := client.Post(context.Background(), AuthenticatePath, map[string]string{})

			// A non-2xx reply is an expected outcome, not an error.
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, tt.wantDetail, resp.Detail)
			assert.Equal(t, tt.wantOpID, resp.OperationID)
			assert.Empty(t, resp.Nome)
		})
	}
}

func TestClient_Post_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // connection refused from here on

	client, err := NewClient(Config{
		BaseURL:    server.URL,
		APIToken:   "tok",
		HTTPClient: &http.Client{Timeout: time.Second},
	})
	require.NoError(t, err)

	_, err = client.Post(context.Background(), AuthenticatePath, map[string]string{})

	require.Error(t, err)
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "POST "+AuthenticatePath, terr.Op)
	require.NotNil(t, terr.Unwrap())
}

func TestClient_Post_UndecodableSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL, APIToken: "tok"})
	require.NoError(t, err)

	_, err = client.Post(context.Background(), AuthenticatePath, map[string]string{})

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
}

func TestClient_Post_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL, APIToken: "tok"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.Post(ctx, AuthenticatePath, map[string]string{})

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
}

func TestClient_Post_UnencodableBody(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "https://autentica.example", APIToken: "tok"})
	require.NoError(t, err)

	resp, err := client.Post(context.Background(), AuthenticatePath, func() {})

	require.Error(t, err)
	var terr *TransportError
	assert.False(t, errors.As(err, &terr), "an encode failure is not a transport error")
	assert.Equal(t, domainauth.ProviderResponse{}, resp)
}
