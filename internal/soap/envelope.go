package soap

import (
	"strings"

	"github.com/trestletech/goforce/internal/constants"
)

// Envelope wraps a serialized operation payload in a SOAP 1.1 envelope
// carrying the session token. Pure templating: exactly one header, exactly
// one body element. The xsi and xsd prefixes are declared here so payload
// elements can use xsi:type without redeclaring them.
func Envelope(sessionID, payload string) string {
	var b strings.Builder

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString(`<soapenv:Envelope xmlns:soapenv="`)
	b.WriteString(constants.SOAPEnvelopeNamespace)
	b.WriteString(`" xmlns:xsi="`)
	b.WriteString(constants.XSINamespace)
	b.WriteString(`" xmlns:xsd="`)
	b.WriteString(constants.XSDNamespace)
	b.WriteString(`">`)
	b.WriteString(`<soapenv:Header>`)
	b.WriteString(`<SessionHeader xmlns="`)
	b.WriteString(constants.MetadataNamespace)
	b.WriteString(`"><sessionId>`)
	escapeInto(&b, sessionID)
	b.WriteString(`</sessionId></SessionHeader>`)
	b.WriteString(`</soapenv:Header>`)
	b.WriteString(`<soapenv:Body>`)
	b.WriteString(payload)
	b.WriteString(`</soapenv:Body>`)
	b.WriteString(`</soapenv:Envelope>`)

	return b.String()
}

// LoginEnvelope wraps a login payload. Login runs before any session
// exists, so the header is empty.
func LoginEnvelope(payload string) string {
	var b strings.Builder

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString(`<soapenv:Envelope xmlns:soapenv="`)
	b.WriteString(constants.SOAPEnvelopeNamespace)
	b.WriteString(`" xmlns:xsi="`)
	b.WriteString(constants.XSINamespace)
	b.WriteString(`" xmlns:xsd="`)
	b.WriteString(constants.XSDNamespace)
	b.WriteString(`">`)
	b.WriteString(`<soapenv:Body>`)
	b.WriteString(payload)
	b.WriteString(`</soapenv:Body>`)
	b.WriteString(`</soapenv:Envelope>`)

	return b.String()
}
