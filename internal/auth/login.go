// Package auth implements the SOAP login collaborator. It is the only part
// of the library that talks to the Partner API; everything else works
// against the Metadata API with the session it produces.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/trestletech/goforce/internal/constants"
	"github.com/trestletech/goforce/internal/soap"
	"github.com/trestletech/goforce/internal/transport"
	"github.com/trestletech/goforce/pkg/force"
)

// Static errors for login.
var (
	ErrLoginResultMissing = errors.New("login response did not contain serverUrl and sessionId")
)

// Config carries the credentials for a SOAP login.
type Config struct {
	LoginURL      string
	Username      string
	Password      string
	SecurityToken string
	APIVersion    string
}

// Login authenticates against the Partner API and returns a live session.
// The security token, when present, is appended to the password as the
// platform requires for logins from untrusted networks.
func Login(ctx context.Context, invoker transport.Invoker, config Config) (*force.Session, error) {
	loginURL := config.LoginURL
	if loginURL == "" {
		loginURL = constants.DefaultLoginURL
	}

	apiVersion := config.APIVersion
	if apiVersion == "" {
		apiVersion = constants.DefaultAPIVersion
	}

	payload, err := buildLoginPayload(config.Username, config.Password+config.SecurityToken)
	if err != nil {
		return nil, fmt.Errorf("building login request: %w", err)
	}

	endpoint := loginURL + constants.PartnerPath(apiVersion)

	body, err := invoker.Invoke(ctx, endpoint, "login", []byte(soap.LoginEnvelope(payload)))
	if err != nil {
		return nil, fmt.Errorf("invoking login: %w", err)
	}

	op, _ := soap.Lookup("login")

	results, err := soap.Parse(op, body)
	if err != nil {
		return nil, fmt.Errorf("parsing login response: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrLoginResultMissing
	}

	serverURL := results[0].ChildText("serverUrl")
	sessionID := results[0].ChildText("sessionId")

	if serverURL == "" || sessionID == "" {
		return nil, ErrLoginResultMissing
	}

	instanceURL, err := instanceFromServerURL(serverURL)
	if err != nil {
		return nil, err
	}

	return &force.Session{
		InstanceURL: instanceURL,
		SessionID:   sessionID,
		APIVersion:  apiVersion,
	}, nil
}

func buildLoginPayload(username, password string) (string, error) {
	rec := force.Record{Fields: []force.Field{
		{Name: "username", Value: username},
		{Name: "password", Value: password},
	}}

	node, err := soap.Build(rec, "")
	if err != nil {
		return "", err
	}

	return soap.Serialize(node, "login", constants.PartnerNamespace), nil
}

// instanceFromServerURL strips the SOAP endpoint path from the serverUrl
// the platform returns, leaving the instance base URL.
func instanceFromServerURL(serverURL string) (string, error) {
	parsed, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("parsing serverUrl: %w", err)
	}

	if parsed.Host == "" {
		return "", fmt.Errorf("parsing serverUrl %q: no host", serverURL)
	}

	return parsed.Scheme + "://" + parsed.Host, nil
}
