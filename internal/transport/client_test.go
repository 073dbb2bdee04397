package transport_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trestletech/goforce/internal/transport"
	"github.com/trestletech/goforce/pkg/force"
)

// recordingLogger collects structured log calls for assertions.
type recordingLogger struct {
	logs []map[string]interface{}
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *recordingLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *recordingLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

func TestClient_Invoke(t *testing.T) {
	t.Parallel()
	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "text/xml; charset=UTF-8", request.Header.Get("Content-Type"))
			assert.Equal(t, `"describeMetadata"`, request.Header.Get("SOAPAction"))

			body, _ := io.ReadAll(request.Body)
			assert.Contains(t, string(body), "<describeMetadata")

			_, _ = writer.Write([]byte("<Envelope><Body></Body></Envelope>"))
		}))
		defer server.Close()

		client := transport.NewClient()

		resp, err := client.Invoke(context.Background(), server.URL, "describeMetadata", []byte("<describeMetadata/>"))
		require.NoError(t, err)
		assert.Contains(t, string(resp), "<Body>")
	})

	t.Run("fault status still returns the body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusInternalServerError)
			_, _ = writer.Write([]byte("<Envelope><Body><Fault/></Body></Envelope>"))
		}))
		defer server.Close()

		client := transport.NewClient()

		resp, err := client.Invoke(context.Background(), server.URL, "deploy", []byte("<deploy/>"))
		require.NoError(t, err)
		assert.Contains(t, string(resp), "<Fault/>")
	})

	t.Run("connection error surfaces as TransportError", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
		server.Close() // closed before use

		client := transport.NewClient(transport.WithRetryConfig(0, time.Millisecond, time.Millisecond))

		_, err := client.Invoke(context.Background(), server.URL, "retrieve", []byte("<retrieve/>"))
		require.Error(t, err)
		assert.True(t, force.IsTransport(err))
		assert.Contains(t, err.Error(), "transport failure during retrieve")
	})

	t.Run("empty response body is a transport error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := transport.NewClient()

		_, err := client.Invoke(context.Background(), server.URL, "listMetadata", []byte("<listMetadata/>"))
		require.Error(t, err)
		assert.True(t, force.IsTransport(err))
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_, _ = writer.Write([]byte("<ok/>"))
		}))
		defer server.Close()

		logger := &recordingLogger{}
		client := transport.NewClient(transport.WithLogger(logger), transport.WithDebug(true))

		_, err := client.Invoke(context.Background(), server.URL, "listMetadata", []byte("<listMetadata/>"))
		require.NoError(t, err)

		require.Len(t, logger.logs, 2)
		assert.Equal(t, "SOAP Request", logger.logs[0]["msg"])
		assert.Equal(t, "SOAP Response", logger.logs[1]["msg"])
	})
}

func TestClient_RetryPolicy(t *testing.T) {
	t.Parallel()
	t.Run("retries on service unavailable", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++
			if attempts < 3 {
				writer.WriteHeader(http.StatusServiceUnavailable)

				return
			}

			_, _ = writer.Write([]byte("<ok/>"))
		}))
		defer server.Close()

		client := transport.NewClient(transport.WithRetryConfig(3, 10*time.Millisecond, 50*time.Millisecond))

		_, err := client.Invoke(context.Background(), server.URL, "deploy", []byte("<deploy/>"))
		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("does not retry 500 fault responses", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++

			writer.WriteHeader(http.StatusInternalServerError)
			_, _ = writer.Write([]byte("<Envelope><Body><Fault/></Body></Envelope>"))
		}))
		defer server.Close()

		client := transport.NewClient(transport.WithRetryConfig(3, 10*time.Millisecond, 50*time.Millisecond))

		_, err := client.Invoke(context.Background(), server.URL, "deploy", []byte("<deploy/>"))
		require.NoError(t, err)
		assert.Equal(t, 1, attempts)
	})
}
