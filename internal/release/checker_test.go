package release

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/dsaintel/dsaiq/releases/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		current    string
		tag        string
		wantUpdate bool
		wantLatest string
	}{
		{"newer available", "v1.0.0", "v1.2.0", true, "v1.2.0"},
		{"same version", "v1.2.0", "v1.2.0", false, "v1.2.0"},
		{"ahead of release", "v2.0.0", "v1.9.9", false, "v1.9.9"},
		{"missing v prefix", "1.0.0", "1.0.1", true, "v1.0.1"},
		{"prerelease older than release", "v1.0.0-rc.1", "v1.0.0", true, "v1.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := releaseServer(t, `{"tag_name":"`+tt.tag+`","html_url":"https://example.com/rel"}`, http.StatusOK)

			result, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: tt.current})
			require.NoError(t, err)
			assert.Equal(t, tt.wantUpdate, result.UpdateAvailable)
			assert.Equal(t, tt.wantLatest, result.LatestVersion)
			assert.Equal(t, "https://example.com/rel", result.ReleaseURL)
		})
	}
}

func TestCheck_DevBuild(t *testing.T) {
	_, err := NewChecker().Check(context.Background(), &CheckInput{Version: "(devel)"})
	assert.ErrorIs(t, err, ErrDevBuild)
}

func TestCheck_Errors(t *testing.T) {
	t.Run("bad status", func(t *testing.T) {
		server := releaseServer(t, `{}`, http.StatusForbidden)
		_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
	})

	t.Run("bad tag", func(t *testing.T) {
		server := releaseServer(t, `{"tag_name":"latest"}`, http.StatusOK)
		_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a semantic version")
	})

	t.Run("other repo", func(t *testing.T) {
		server := releaseServer(t, `{"tag_name":"v9.0.0"}`, http.StatusOK)
		_, err := NewChecker(WithBaseURL(server.URL), WithRepo("someone", "else")).
			Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})
}
