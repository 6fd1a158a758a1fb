package remote_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/mtgdump/pkg/domain/types"
	"github.com/m-mizutani/mtgdump/pkg/infra/remote"
)

func TestClient_Open_Success(t *testing.T) {
	ctx := context.Background()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("archive-bytes"))
	}))
	defer srv.Close()

	client := remote.NewClient(srv.URL+"/files/AllSets.json.tar.gz",
		remote.WithAuthToken("secret-token"),
	)

	body, info, err := client.Open(ctx)
	gt.NoError(t, err)
	defer body.Close()

	gt.Number(t, info.StatusCode).Equal(http.StatusOK)
	gt.True(t, info.Success())

	data, err := io.ReadAll(body)
	gt.NoError(t, err)
	gt.String(t, string(data)).Equal("archive-bytes")
	gt.String(t, gotAuth).Equal("Bearer secret-token")
}

func TestClient_Name(t *testing.T) {
	client := remote.NewClient("https://mtgjson.com/files/AllSets.json.tar.gz")
	gt.String(t, client.Name()).Equal("AllSets.json.tar.gz")
}

func TestClient_Open_ClientErrorNotRetried(t *testing.T) {
	ctx := context.Background()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := remote.NewClient(srv.URL, remote.WithMaxAttempts(3))

	_, _, err := client.Open(ctx)
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagNetwork))

	// 4xx stops retrying immediately
	gt.Number(t, atomic.LoadInt32(&calls)).Equal(int32(1))
}

func TestClient_Open_RetriesServerError(t *testing.T) {
	ctx := context.Background()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := remote.NewClient(srv.URL, remote.WithMaxAttempts(3))

	body, info, err := client.Open(ctx)
	gt.NoError(t, err)
	defer body.Close()

	gt.Number(t, info.StatusCode).Equal(http.StatusOK)
	gt.Number(t, atomic.LoadInt32(&calls)).Equal(int32(3))
}

func TestClient_Open_FailFastByDefault(t *testing.T) {
	ctx := context.Background()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := remote.NewClient(srv.URL)

	_, _, err := client.Open(ctx)
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagNetwork))
	gt.Number(t, atomic.LoadInt32(&calls)).Equal(int32(1))
}

func TestClient_Open_ConnectionRefused(t *testing.T) {
	ctx := context.Background()

	// Grab a port that nothing listens on
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := remote.NewClient(url)

	_, _, err := client.Open(ctx)
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagNetwork))
}

func TestFileSource(t *testing.T) {
	ctx := context.Background()

	t.Run("opens existing file", func(t *testing.T) {
		path := t.TempDir() + "/dump.tar.gz"
		gt.NoError(t, writeTestFile(path, "content"))

		source := remote.NewFileSource(path)
		gt.String(t, source.Name()).Equal("dump.tar.gz")

		body, info, err := source.Open(ctx)
		gt.NoError(t, err)
		defer body.Close()

		gt.True(t, info.Success())
		gt.Number(t, info.ContentLength).Equal(int64(len("content")))

		data, err := io.ReadAll(body)
		gt.NoError(t, err)
		gt.String(t, string(data)).Equal("content")
	})

	t.Run("missing file", func(t *testing.T) {
		source := remote.NewFileSource(t.TempDir() + "/no-such-file")
		_, _, err := source.Open(ctx)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagIO))
	})
}

func writeTestFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
