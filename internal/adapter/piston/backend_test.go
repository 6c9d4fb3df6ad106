package piston_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/fcv-2025.net/codejudge/internal/adapter/logging"
	"gitlab.com/fcv-2025.net/codejudge/internal/adapter/piston"
	"gitlab.com/fcv-2025.net/codejudge/internal/core/services/runtimes"
	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
	"gitlab.com/fcv-2025.net/codejudge/internal/static/errs"
)

var runtimeList = []piston.Runtime{
	{Language: "python", Version: "3.8.0", Aliases: []string{"py", "py3", "python3"}},
	{Language: "python", Version: "3.11.0", Aliases: []string{"py", "py3", "python3"}},
	{Language: "python", Version: "3.9.4", Aliases: []string{"py", "py3", "python3"}},
	{Language: "javascript", Version: "18.15.0", Aliases: []string{"node-javascript", "node-js", "javascript", "js"}},
	{Language: "c++", Version: "10.2.0", Aliases: []string{"cpp", "g++"}},
	{Language: "java", Version: "15.0.2", Aliases: []string{}},
}

func TestBuildCatalogPicksNumericallyNewest(t *testing.T) {
	catalog := piston.BuildCatalog(runtimeList)

	assert.Equal(t, "3.11.0", catalog["python"].Version)
	assert.Equal(t, "3.11.0", catalog["py3"].Version)
	assert.Equal(t, "c++", catalog["cpp"].Language)
	assert.Equal(t, "javascript", catalog["js"].Language)
	assert.Equal(t, "15.0.2", catalog["java"].Version)
}

func TestBuildCatalogFillsLogicalNamesFromSynonyms(t *testing.T) {
	catalog := piston.BuildCatalog([]piston.Runtime{
		{Language: "Node", Version: "20.1.0"},
		{Language: "CXX", Version: "12.0.0"},
	})
	assert.Equal(t, "Node", catalog["javascript"].Language)
	assert.Equal(t, "CXX", catalog["cpp"].Language)
	_, ok := catalog["python"]
	assert.False(t, ok)
}

type fakePiston struct {
	runtimeCalls atomic.Int32
	lastRequest  atomic.Value
	response     string
	status       int
}

func (f *fakePiston) server(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/runtimes", func(w http.ResponseWriter, r *http.Request) {
		f.runtimeCalls.Add(1)
		_ = json.NewEncoder(w).Encode(runtimeList)
	})
	mux.HandleFunc("/execute", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.lastRequest.Store(req)
		if f.status != 0 {
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte("runtime is unknown"))
			return
		}
		_, _ = w.Write([]byte(f.response))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newBackend(t *testing.T, f *fakePiston, now func() time.Time) *piston.Backend {
	srv := f.server(t)
	return piston.NewBackend(piston.NewClient(srv.URL, 5*time.Second, nil), logging.NewNopLogger(), runtimes.WithClock(now))
}

func TestResolveRuntimeUsesCacheUntilTTL(t *testing.T) {
	f := &fakePiston{}
	now := time.Unix(1_700_000_000, 0)
	b := newBackend(t, f, func() time.Time { return now })
	ctx := context.Background()

	target, err := b.ResolveRuntime(ctx, "Python")
	require.NoError(t, err)
	assert.Equal(t, domain.BackendTarget{Kind: domain.BackendPiston, Language: "python", Version: "3.11.0", Name: "python 3.11.0"}, target)

	_, err = b.ResolveRuntime(ctx, "cpp")
	require.NoError(t, err)
	assert.EqualValues(t, 1, f.runtimeCalls.Load())

	now = now.Add(10 * time.Minute)
	_, err = b.ResolveRuntime(ctx, "cpp")
	require.NoError(t, err)
	assert.EqualValues(t, 2, f.runtimeCalls.Load())

	_, err = b.ResolveRuntime(ctx, "cobol")
	assert.True(t, errs.IsUnsupportedLanguage(err))
}

func TestExecuteMapsRunStage(t *testing.T) {
	f := &fakePiston{response: `{"language":"python","version":"3.11.0","run":{"stdout":"3\n","stderr":"","code":0,"signal":null}}`}
	b := newBackend(t, f, time.Now)

	raw, err := b.Execute(context.Background(),
		domain.BackendTarget{Kind: domain.BackendPiston, Language: "python", Version: "3.11.0"},
		domain.ExecutionRequest{SourceCode: "print(3)", Stdin: "1 2"})
	require.NoError(t, err)

	sent := f.lastRequest.Load().(map[string]interface{})
	assert.Equal(t, "python", sent["language"])
	assert.Equal(t, "3.11.0", sent["version"])
	assert.Equal(t, "1 2", sent["stdin"])
	files := sent["files"].([]interface{})
	require.Len(t, files, 1)
	assert.Equal(t, "print(3)", files[0].(map[string]interface{})["content"])

	assert.Equal(t, "3\n", *raw.Stdout)
	assert.Equal(t, 0, *raw.StatusID)
	assert.Equal(t, "OK", raw.StatusDescription)
	assert.Equal(t, domain.StatusAccepted, b.ClassifyStatus(raw))
}

func TestExecuteClassifiesFailures(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		class    domain.StatusClass
		describe string
	}{
		{"non-zero exit", `{"run":{"stdout":"","stderr":"Traceback","code":1,"signal":null}}`, domain.StatusRuntimeError, "Runtime Error"},
		{"killed", `{"run":{"stdout":"","stderr":"","code":null,"signal":"SIGKILL"}}`, domain.StatusInternalError, "Signal SIGKILL"},
		{"signal with exit code", `{"run":{"stdout":"","stderr":"","code":139,"signal":"SIGSEGV"}}`, domain.StatusRuntimeError, "Signal SIGSEGV"},
		{"no run stage", `{"compile":{"stdout":"","stderr":"error: expected ';'","code":1}}`, domain.StatusInternalError, "Internal Error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakePiston{response: tc.body}
			b := newBackend(t, f, time.Now)
			raw, err := b.Execute(context.Background(), domain.BackendTarget{Kind: domain.BackendPiston, Language: "c++", Version: "10.2.0"}, domain.ExecutionRequest{})
			require.NoError(t, err)
			assert.Equal(t, tc.class, b.ClassifyStatus(raw))
			assert.Equal(t, tc.describe, raw.StatusDescription)
		})
	}
}

func TestExecuteSurfacesCompileOutput(t *testing.T) {
	f := &fakePiston{response: `{"compile":{"stdout":"","stderr":"warning: unused","output":"warning: unused","code":0},"run":{"stdout":"ok","stderr":"","code":0}}`}
	b := newBackend(t, f, time.Now)
	raw, err := b.Execute(context.Background(), domain.BackendTarget{Kind: domain.BackendPiston, Language: "c++", Version: "10.2.0"}, domain.ExecutionRequest{})
	require.NoError(t, err)
	require.NotNil(t, raw.CompileOutput)
	assert.Equal(t, "warning: unused", *raw.CompileOutput)
}

func TestExecuteNon2xxIsBackendError(t *testing.T) {
	f := &fakePiston{status: http.StatusBadRequest}
	b := newBackend(t, f, time.Now)
	_, err := b.Execute(context.Background(), domain.BackendTarget{Kind: domain.BackendPiston, Language: "python", Version: "9.9"}, domain.ExecutionRequest{})

	var be *errs.BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusBadRequest, be.StatusCode)
	assert.Equal(t, "runtime is unknown", be.Body)
}

func TestExecuteUnreachableIsBackendError(t *testing.T) {
	b := piston.NewBackend(piston.NewClient("http://127.0.0.1:1", time.Second, nil), logging.NewNopLogger())
	_, err := b.Execute(context.Background(), domain.BackendTarget{Kind: domain.BackendPiston, Language: "python", Version: "3"}, domain.ExecutionRequest{})

	var be *errs.BackendError
	require.ErrorAs(t, err, &be)
	assert.Zero(t, be.StatusCode)
}
