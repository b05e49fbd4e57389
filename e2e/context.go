package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	empmodels "punchclock/internal/employee/models"
	id "punchclock/pkg/domain"
	"punchclock/pkg/platform/middleware/auth"
)

// TestContext holds one scenario's state. The server is shared across
// scenarios; each scenario acts through fresh admin and kiosk accounts.
type TestContext struct {
	server     *httptest.Server
	signingKey string
	company    id.CompanyID
	employees  []empmodels.Profile

	adminID id.UserID
	kioskID id.UserID
	token   string

	lastStatus int
	lastBody   []byte
	memory     map[string]string
}

func NewTestContext(server *httptest.Server, signingKey string, company id.CompanyID, employees []empmodels.Profile) *TestContext {
	return &TestContext{
		server:     server,
		signingKey: signingKey,
		company:    company,
		employees:  employees,
		adminID:    id.UserID(uuid.New()),
		kioskID:    id.UserID(uuid.New()),
		memory:     make(map[string]string),
	}
}

func (tc *TestContext) mint(userID id.UserID, role string) error {
	claims := auth.Claims{
		UserID:    userID.String(),
		CompanyID: tc.company.String(),
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(tc.signingKey))
	if err != nil {
		return err
	}
	tc.token = token
	return nil
}

func (tc *TestContext) ActAsAdmin() error { return tc.mint(tc.adminID, "ADMIN") }

func (tc *TestContext) ActAsKiosk() error { return tc.mint(tc.kioskID, "KIOSK") }

// ActAsEmployee signs in as the n-th seeded employee, counting from 1.
func (tc *TestContext) ActAsEmployee(n int) error {
	p, err := tc.employee(n)
	if err != nil {
		return err
	}
	return tc.mint(p.UserID, "EMPLOYEE")
}

func (tc *TestContext) EmployeeID(n int) (string, error) {
	p, err := tc.employee(n)
	if err != nil {
		return "", err
	}
	return p.ID.String(), nil
}

func (tc *TestContext) employee(n int) (empmodels.Profile, error) {
	if n < 1 || n > len(tc.employees) {
		return empmodels.Profile{}, fmt.Errorf("no seeded employee %d", n)
	}
	return tc.employees[n-1], nil
}

func (tc *TestContext) GET(path string) error { return tc.do(http.MethodGet, path, nil) }

func (tc *TestContext) POST(path string, body any) error { return tc.do(http.MethodPost, path, body) }

func (tc *TestContext) PUT(path string, body any) error { return tc.do(http.MethodPut, path, body) }

func (tc *TestContext) PATCH(path string, body any) error { return tc.do(http.MethodPatch, path, body) }

func (tc *TestContext) do(method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, tc.server.URL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if tc.token != "" {
		req.Header.Set("Authorization", "Bearer "+tc.token)
	}

	resp, err := tc.server.Client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	tc.lastStatus = resp.StatusCode
	tc.lastBody, err = io.ReadAll(resp.Body)
	return err
}

func (tc *TestContext) GetLastResponseStatus() int { return tc.lastStatus }

func (tc *TestContext) GetLastResponseBody() []byte { return tc.lastBody }

// GetResponseField reads a dotted path such as "details.scope" from the last
// JSON object response.
func (tc *TestContext) GetResponseField(field string) (any, error) {
	var body map[string]any
	if err := json.Unmarshal(tc.lastBody, &body); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %s", tc.lastBody)
	}
	var current any = body
	for part := range strings.SplitSeq(field, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q: %q is not an object", field, part)
		}
		if current, ok = obj[part]; !ok {
			return nil, fmt.Errorf("field %q not found in %s", field, tc.lastBody)
		}
	}
	return current, nil
}

func (tc *TestContext) Remember(key, value string) { tc.memory[key] = value }

func (tc *TestContext) Recall(key string) string { return tc.memory[key] }
