package erp

import (
	"encoding/xml"
	"fmt"
	"strings"
)

const (
	servicesNamespace = "http://microsoft.com/webservices/"

	actionAuthenticate = servicesNamespace + "AuthenticateUser"
	actionExportByID   = servicesNamespace + "wsExportDataById"
)

// Credentials identifies a service account on the export endpoint. The
// company and web-service fields are part of the request header the
// upstream expects on every call; branch and language are fixed.
type Credentials struct {
	Username   string
	Password   string
	Company    string
	WebService string
}

const envelopePrologue = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">`

const envelopeEpilogue = `
</soap:Envelope>`

func escapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// authenticateEnvelope builds the AuthenticateUser request. All the
// credentials travel in the wsBasicQueryHeader of the SOAP header; the
// body operation element is empty.
func authenticateEnvelope(creds Credentials) string {
	var b strings.Builder
	b.WriteString(envelopePrologue)
	b.WriteString(`
  <soap:Header>
    <wsBasicQueryHeader xmlns="` + servicesNamespace + `">`)
	fmt.Fprintf(&b, `
      <pUsername>%s</pUsername>
      <pPassword>%s</pPassword>
      <pCompany>%s</pCompany>
      <pBranch>1</pBranch>
      <pLanguage>2</pLanguage>
      <pWebWervice>%s</pWebWervice>`,
		escapeXML(creds.Username),
		escapeXML(creds.Password),
		escapeXML(creds.Company),
		escapeXML(creds.WebService),
	)
	b.WriteString(`
    </wsBasicQueryHeader>
  </soap:Header>
  <soap:Body>
    <AuthenticateUser xmlns="` + servicesNamespace + `" />
  </soap:Body>`)
	b.WriteString(envelopeEpilogue)
	return b.String()
}

// exportEnvelope builds the wsExportDataById request. The header carries
// the credentials plus the token from AuthenticateUser (no branch or
// language fields on this call); the body carries only the export id.
func exportEnvelope(creds Credentials, token string, exportID int) string {
	var b strings.Builder
	b.WriteString(envelopePrologue)
	b.WriteString(`
  <soap:Header>
    <wsBasicQueryHeader xmlns="` + servicesNamespace + `">`)
	fmt.Fprintf(&b, `
      <pUsername>%s</pUsername>
      <pPassword>%s</pPassword>
      <pCompany>%s</pCompany>
      <pWebWervice>%s</pWebWervice>
      <pAuthenticatedToken>%s</pAuthenticatedToken>`,
		escapeXML(creds.Username),
		escapeXML(creds.Password),
		escapeXML(creds.Company),
		escapeXML(creds.WebService),
		escapeXML(token),
	)
	fmt.Fprintf(&b, `
    </wsBasicQueryHeader>
  </soap:Header>
  <soap:Body>
    <wsExportDataById xmlns="%s">
      <intExpgr_id>%d</intExpgr_id>
    </wsExportDataById>
  </soap:Body>`, servicesNamespace, exportID)
	b.WriteString(envelopeEpilogue)
	return b.String()
}
