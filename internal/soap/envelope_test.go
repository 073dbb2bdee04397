package soap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope(t *testing.T) {
	t.Parallel()

	env := Envelope("00D-session-token", `<describeMetadata xmlns="http://soap.sforce.com/2006/04/metadata"></describeMetadata>`)

	parsed, err := ParseDocument([]byte(env))
	require.NoError(t, err)
	assert.Equal(t, "Envelope", parsed.Name)

	session := parsed.Find("Header", "SessionHeader", "sessionId")
	require.NotNil(t, session)
	assert.Equal(t, "00D-session-token", session.Text)

	body := parsed.Find("Body")
	require.NotNil(t, body)
	require.Len(t, body.Children, 1)
	assert.Equal(t, "describeMetadata", body.Children[0].Name)
}

func TestEnvelope_EscapesToken(t *testing.T) {
	t.Parallel()

	env := Envelope(`token<&>"`, "<x></x>")

	parsed, err := ParseDocument([]byte(env))
	require.NoError(t, err)
	assert.Equal(t, `token<&>"`, parsed.Find("Header", "SessionHeader", "sessionId").Text)
}

func TestLoginEnvelope_NoHeader(t *testing.T) {
	t.Parallel()

	env := LoginEnvelope("<login></login>")

	parsed, err := ParseDocument([]byte(env))
	require.NoError(t, err)
	assert.Nil(t, parsed.Find("Header"))
	require.NotNil(t, parsed.Find("Body", "login"))
}
