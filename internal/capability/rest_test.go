package capability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newService stands up a stub metadata service that issues tokens and
// answers one operation endpoint.
func newService(t *testing.T, handler http.HandlerFunc) (*httptest.Server, Credentials) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			fmt.Fprint(w, "test-token-abc")
		case http.MethodDelete:
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/servers/", handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, Credentials{
		Endpoint:   srv.URL,
		ViewServer: "view-server",
		User:       "erinoverview",
		Secret:     "secret",
	}
}

func TestAcquireAndReleaseSession(t *testing.T) {
	_, creds := newService(t, func(w http.ResponseWriter, r *http.Request) {})
	cap := NewCollectionManager(creds).(*restCapability)

	require.NoError(t, cap.AcquireSession(context.Background()))
	assert.Equal(t, "test-token-abc", cap.token)

	require.NoError(t, cap.ReleaseSession(context.Background()))
	assert.Empty(t, cap.token)
}

func TestReleaseWithoutSessionIsNoop(t *testing.T) {
	cap := NewCollectionManager(Credentials{Endpoint: "https://unreachable.invalid"}).(*restCapability)
	assert.NoError(t, cap.ReleaseSession(context.Background()))
}

func TestInvokeRoutesOperationAndSendsParams(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]interface{}
	_, creds := newService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"relatedHTTPCode": 200,
			"elements":        []interface{}{map[string]interface{}{"display_name": "Clinical Trials"}},
		})
	})

	cap := NewCollectionManager(creds)
	require.NoError(t, cap.AcquireSession(context.Background()))
	raw, err := cap.Invoke(context.Background(), "find_collections", map[string]interface{}{
		"search_string": "clinical",
		"output_format": "DICT",
	})
	require.NoError(t, err)

	assert.Equal(t, "/servers/view-server/api/open-metadata/collection-manager/collections/by-search-string", gotPath)
	assert.Equal(t, "Bearer test-token-abc", gotAuth)
	assert.Equal(t, "clinical", gotBody["search_string"])

	envelope, ok := raw.(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, envelope["elements"], 1)
}

func TestInvokeStripsEnvelopeBookkeeping(t *testing.T) {
	_, creds := newService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"relatedHTTPCode":   200,
			"actionDescription": "findCollections",
			"elements":          []interface{}{map[string]interface{}{"name": "c1"}},
		})
	})

	cap := NewCollectionManager(creds)
	require.NoError(t, cap.AcquireSession(context.Background()))
	raw, err := cap.Invoke(context.Background(), "find_collections", nil)
	require.NoError(t, err)

	envelope, ok := raw.(map[string]interface{})
	require.True(t, ok)
	assert.NotContains(t, envelope, "relatedHTTPCode")
	assert.NotContains(t, envelope, "actionDescription")
	assert.Len(t, envelope["elements"], 1)
}

func TestInvokeUnknownOperation(t *testing.T) {
	_, creds := newService(t, func(w http.ResponseWriter, r *http.Request) {})
	cap := NewGlossaryManager(creds)

	_, err := cap.Invoke(context.Background(), "delete_everything", nil)
	var notFound *OperationNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "GlossaryManager", notFound.Capability)
	assert.Equal(t, "delete_everything", notFound.Operation)
}

func TestGenericCapabilityAcceptsAnyOperation(t *testing.T) {
	var gotPath string
	_, creds := newService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"elements": []}`)
	})

	cap := NewGeneric(creds)
	_, err := cap.Invoke(context.Background(), "find_anything_at_all", map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, "/servers/view-server/api/open-metadata/metadata-explorer/find-anything-at-all", gotPath)
}

func TestInvokeSurfacesEmbeddedServiceError(t *testing.T) {
	_, creds := newService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"relatedHTTPCode":       400,
			"exceptionErrorMessage": "OMAG-COMMON-400-015 search string is invalid",
		})
	})

	cap := NewCollectionManager(creds)
	_, err := cap.Invoke(context.Background(), "find_collections", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OMAG-COMMON-400-015")
}

func TestInvokeHTTPErrorStatus(t *testing.T) {
	_, creds := newService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "view server not available", http.StatusServiceUnavailable)
	})

	cap := NewCollectionManager(creds)
	_, err := cap.Invoke(context.Background(), "find_collections", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "view server not available")
}

func TestInvokeReturnsPreRenderedText(t *testing.T) {
	_, creds := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/markdown")
		fmt.Fprint(w, "# Glossary Report\n\nSome narrative.")
	})

	cap := NewGlossaryManager(creds)
	raw, err := cap.Invoke(context.Background(), "find_glossaries", nil)
	require.NoError(t, err)
	assert.Equal(t, "# Glossary Report\n\nSome narrative.", raw)
}

func TestDecodeResponse(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		payload     string
		expect      interface{}
	}{
		{"empty body", "", "", nil},
		{"json array", "application/json", `[1, 2]`, []interface{}{float64(1), float64(2)}},
		{"json string", "application/json", `"No elements found"`, "No elements found"},
		{"plain text", "text/plain", "hello", "hello"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := decodeResponse(test.contentType, []byte(test.payload))
			require.NoError(t, err)
			assert.Equal(t, test.expect, got)
		})
	}
}
