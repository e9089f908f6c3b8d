package capability

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"formset/pkg/logging"
)

// DefaultHTTPTimeout bounds every request to the metadata service. Timeouts
// belong to the capability, not to the engine.
const DefaultHTTPTimeout = 120 * time.Second

// restCapability is a single-use REST client for one view service of the
// metadata platform. Named capabilities restrict the operation set; the
// generic capability accepts any operation name and derives the URL path
// from it.
type restCapability struct {
	name        string
	servicePath string
	// operations maps operation names to URL path segments. A nil map means
	// any operation is accepted, with the path derived from the name.
	operations map[string]string

	creds  Credentials
	client *http.Client
	token  string
}

func newRESTCapability(name, servicePath string, operations map[string]string, creds Credentials) *restCapability {
	return &restCapability{
		name:        name,
		servicePath: servicePath,
		operations:  operations,
		creds:       creds,
		client:      &http.Client{Timeout: DefaultHTTPTimeout},
	}
}

func (c *restCapability) Name() string {
	return c.name
}

// AcquireSession exchanges the user identity for a bearer token.
func (c *restCapability) AcquireSession(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{
		"userId":   c.creds.User,
		"password": c.creds.Secret,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/api/token", strings.TrimSuffix(c.creds.Endpoint, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("acquiring session from %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("acquiring session from %s: unexpected status %s", url, resp.Status)
	}

	token, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading session token: %w", err)
	}
	c.token = strings.TrimSpace(string(token))
	if c.token == "" {
		return fmt.Errorf("acquiring session from %s: empty token", url)
	}
	logging.Debug("capability", "Acquired session for %s as %s", c.name, c.creds.User)
	return nil
}

// ReleaseSession invalidates the bearer token.
func (c *restCapability) ReleaseSession(ctx context.Context) error {
	if c.token == "" {
		return nil
	}
	url := fmt.Sprintf("%s/api/token", strings.TrimSuffix(c.creds.Endpoint, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	c.token = ""

	if resp.StatusCode >= http.StatusBadRequest && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("releasing session: unexpected status %s", resp.Status)
	}
	return nil
}

// Invoke posts the bound parameter mapping to the operation's endpoint and
// decodes the response. JSON responses come back as decoded values; anything
// else (a pre-rendered markdown or HTML document) comes back as a string.
func (c *restCapability) Invoke(ctx context.Context, operation string, params map[string]interface{}) (interface{}, error) {
	pathSegment, err := c.operationPath(operation)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encoding parameters for %s.%s: %w", c.name, operation, err)
	}

	url := fmt.Sprintf("%s/servers/%s/api/open-metadata/%s/%s",
		strings.TrimSuffix(c.creds.Endpoint, "/"), c.creds.ViewServer, c.servicePath, pathSegment)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("invoking %s.%s: %w", c.name, operation, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response of %s.%s: %w", c.name, operation, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("invoking %s.%s: status %s: %s", c.name, operation, resp.Status, firstLine(payload))
	}

	return decodeResponse(resp.Header.Get("Content-Type"), payload)
}

// operationPath resolves the URL segment for an operation, enforcing the
// capability's operation set when one is declared.
func (c *restCapability) operationPath(operation string) (string, error) {
	if c.operations == nil {
		return strings.ReplaceAll(operation, "_", "-"), nil
	}
	path, ok := c.operations[operation]
	if !ok {
		return "", &OperationNotFoundError{Capability: c.name, Operation: operation}
	}
	return path, nil
}

// decodeResponse unwraps the service's response envelope. The service either
// returns a JSON document (possibly wrapping elements plus an embedded
// response code) or pre-rendered text.
func decodeResponse(contentType string, payload []byte) (interface{}, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if strings.Contains(contentType, "json") || trimmed[0] == '{' || trimmed[0] == '[' || trimmed[0] == '"' {
		var value interface{}
		if err := json.Unmarshal(trimmed, &value); err == nil {
			return unwrapEnvelope(value)
		}
	}
	return string(trimmed), nil
}

// bookkeepingFields are envelope fields the service uses to report its own
// status; they are not payload and must not leak into table columns.
var bookkeepingFields = []string{
	"relatedHTTPCode",
	"actionDescription",
	"exceptionClassName",
	"exceptionErrorMessage",
	"exceptionErrorMessageId",
	"exceptionErrorMessageParameters",
	"exceptionSystemAction",
	"exceptionUserAction",
	"exceptionProperties",
}

// unwrapEnvelope surfaces errors the service reports inside a 200 response
// and strips the envelope's bookkeeping fields.
func unwrapEnvelope(value interface{}) (interface{}, error) {
	envelope, ok := value.(map[string]interface{})
	if !ok {
		return value, nil
	}
	if code, ok := envelope["relatedHTTPCode"].(float64); ok && int(code) != http.StatusOK {
		msg, _ := envelope["exceptionErrorMessage"].(string)
		if msg == "" {
			msg = fmt.Sprintf("service reported code %d", int(code))
		}
		return nil, fmt.Errorf("%s", msg)
	}
	for _, field := range bookkeepingFields {
		delete(envelope, field)
	}
	return envelope, nil
}

func firstLine(payload []byte) string {
	line := strings.TrimSpace(string(payload))
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if len(line) > 200 {
		line = line[:200]
	}
	return line
}
