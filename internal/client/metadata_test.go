package client_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trestletech/goforce/internal/client"
	"github.com/trestletech/goforce/internal/transport"
	"github.com/trestletech/goforce/pkg/force"
)

// recordingLogger captures log calls for assertions.
type recordingLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) {}
func (l *recordingLogger) Info(msg string, fields map[string]interface{})  {}
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {}

func (l *recordingLogger) Warn(msg string, fields map[string]interface{}) {
	l.mu.Lock()
	l.warns = append(l.warns, msg)
	l.mu.Unlock()
}

func soapResponse(inner string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>` + inner + `</soapenv:Body>
</soapenv:Envelope>`
}

func testSession(serverURL string) *force.Session {
	return &force.Session{
		InstanceURL: serverURL,
		SessionID:   "00D-test-session",
		APIVersion:  "60.0",
	}
}

func newTestClient(serverURL string, logger force.Logger) *client.MetadataClient {
	if logger == nil {
		logger = force.NopLogger{}
	}

	return client.NewMetadataClient(testSession(serverURL), transport.NewClient(), logger, force.NewNoOpCache(), 0)
}

func TestCreateMetadata(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/services/Soap/m/60.0", request.URL.Path)
		assert.Equal(t, `"createMetadata"`, request.Header.Get("SOAPAction"))

		body, _ := io.ReadAll(request.Body)
		payload := string(body)
		assert.Contains(t, payload, "<sessionId>00D-test-session</sessionId>")
		assert.Contains(t, payload, `<createMetadata xmlns="http://soap.sforce.com/2006/04/metadata">`)
		assert.Contains(t, payload, `<metadata xsi:type="CustomObject">`)
		assert.Contains(t, payload, "<fullName>Invoice__c</fullName>")

		_, _ = writer.Write([]byte(soapResponse(`
    <createMetadataResponse>
      <result>
        <fullName>Invoice__c</fullName>
        <success>true</success>
      </result>
    </createMetadataResponse>`)))
	}))
	defer server.Close()

	metadata := newTestClient(server.URL, nil)

	result, err := metadata.CreateMetadata(context.Background(), "CustomObject", []force.Record{
		{Fields: []force.Field{
			{Name: "fullName", Value: "Invoice__c"},
			{Name: "label", Value: "Invoice"},
		}},
	})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.True(t, result.Rows[0].Success())
	assert.Equal(t, []string{"fullName", "success"}, result.Columns)
}

func TestCreateMetadata_WarnsOnUnknownFields(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(soapResponse(`
    <createMetadataResponse>
      <result>
        <fullName>Invoice__c.Total__c</fullName>
        <success>true</success>
      </result>
    </createMetadataResponse>`)))
	}))
	defer server.Close()

	logger := &recordingLogger{}
	metadata := newTestClient(server.URL, logger)

	_, err := metadata.CreateMetadata(context.Background(), "CustomField", []force.Record{
		{Fields: []force.Field{
			{Name: "fullName", Value: "Invoice__c.Total__c"},
			{Name: "colour", Value: "red"},
		}},
	})
	require.NoError(t, err)
	require.Len(t, logger.warns, 1)
	assert.Equal(t, "unrecognized metadata fields", logger.warns[0])
}

func TestReadMetadata(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, _ := io.ReadAll(request.Body)
		assert.Contains(t, string(body), "<type>CustomObject</type>")
		assert.Contains(t, string(body), "<fullNames>Invoice__c</fullNames><fullNames>Order__c</fullNames>")

		_, _ = writer.Write([]byte(soapResponse(`
    <readMetadataResponse>
      <result>
        <records>
          <fullName>Invoice__c</fullName>
          <label>Invoice</label>
        </records>
        <records>
          <fullName>Order__c</fullName>
        </records>
      </result>
    </readMetadataResponse>`)))
	}))
	defer server.Close()

	metadata := newTestClient(server.URL, nil)

	result, err := metadata.ReadMetadata(context.Background(), "CustomObject", []string{"Invoice__c", "Order__c"})
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)

	label, ok := result.Rows[0].GetString("label")
	require.True(t, ok)
	assert.Equal(t, "Invoice", label)

	// Absent fields are filled, never dropped.
	assert.True(t, force.IsNull(result.Rows[1]["label"]))
}

func TestDeleteMetadata(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, `"deleteMetadata"`, request.Header.Get("SOAPAction"))

		_, _ = writer.Write([]byte(soapResponse(`
    <deleteMetadataResponse>
      <result>
        <fullName>Invoice__c</fullName>
        <success>true</success>
      </result>
    </deleteMetadataResponse>`)))
	}))
	defer server.Close()

	metadata := newTestClient(server.URL, nil)

	result, err := metadata.DeleteMetadata(context.Background(), "CustomObject", []string{"Invoice__c"})
	require.NoError(t, err)
	assert.True(t, result.Rows[0].Success())
}

func TestRenameMetadata(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, _ := io.ReadAll(request.Body)
		payload := string(body)
		assert.Contains(t, payload, "<oldFullName>Invoice__c</oldFullName>")
		assert.Contains(t, payload, "<newFullName>Bill__c</newFullName>")

		_, _ = writer.Write([]byte(soapResponse(`
    <renameMetadataResponse>
      <result>
        <fullName>Bill__c</fullName>
        <success>true</success>
      </result>
    </renameMetadataResponse>`)))
	}))
	defer server.Close()

	metadata := newTestClient(server.URL, nil)

	result, err := metadata.RenameMetadata(context.Background(), "CustomObject", "Invoice__c", "Bill__c")
	require.NoError(t, err)
	assert.True(t, result.Rows[0].Success())
}

func TestUpdateMetadata_ApplicationFault(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(soapResponse(`
    <updateMetadataResponse>
      <result>
        <errors>
          <statusCode>FIELD_INTEGRITY_EXCEPTION</statusCode>
          <message>Cannot change type of a deployed field</message>
        </errors>
        <fullName>Invoice__c.Total__c</fullName>
        <success>false</success>
      </result>
    </updateMetadataResponse>`)))
	}))
	defer server.Close()

	metadata := newTestClient(server.URL, nil)

	_, err := metadata.UpdateMetadata(context.Background(), "CustomField", []force.Record{
		{Fields: []force.Field{{Name: "fullName", Value: "Invoice__c.Total__c"}}},
	})
	require.Error(t, err)
	assert.True(t, force.IsApplicationFault(err))
	assert.Contains(t, err.Error(), "FIELD_INTEGRITY_EXCEPTION: Cannot change type of a deployed field")
}

func TestMetadataCall_SessionExpired(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusInternalServerError)
		_, _ = writer.Write([]byte(soapResponse(`
    <soapenv:Fault>
      <faultcode>sf:INVALID_SESSION_ID</faultcode>
      <faultstring>Invalid Session ID found in SessionHeader</faultstring>
    </soapenv:Fault>`)))
	}))
	defer server.Close()

	metadata := newTestClient(server.URL, nil)

	_, err := metadata.ReadMetadata(context.Background(), "CustomObject", []string{"Invoice__c"})
	require.Error(t, err)
	assert.True(t, force.IsProtocolFault(err))
	assert.True(t, force.IsSessionExpired(err))
}

func TestUpsertMetadata_MixedTypes(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, _ := io.ReadAll(request.Body)
		// The per-record type wins when no call-level override applies.
		assert.Equal(t, 2, strings.Count(string(body), `xsi:type="CustomObject"`))

		_, _ = writer.Write([]byte(soapResponse(`
    <upsertMetadataResponse>
      <result>
        <created>true</created>
        <fullName>Invoice__c</fullName>
        <success>true</success>
      </result>
      <result>
        <created>false</created>
        <fullName>Order__c</fullName>
        <success>true</success>
      </result>
    </upsertMetadataResponse>`)))
	}))
	defer server.Close()

	metadata := newTestClient(server.URL, nil)

	result, err := metadata.UpsertMetadata(context.Background(), "CustomObject", []force.Record{
		{Fields: []force.Field{{Name: "fullName", Value: "Invoice__c"}, {Name: "label", Value: "Invoice"}}},
		{Fields: []force.Field{{Name: "fullName", Value: "Order__c"}, {Name: "label", Value: "Order"}}},
	})
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, []string{"created", "fullName", "success"}, result.Columns)
}
