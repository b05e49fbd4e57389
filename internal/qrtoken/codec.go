// Package qrtoken signs and verifies the two QR token kinds.
//
// A daily company token authorizes a geo-less punch on one calendar date; an
// employee token identifies one employee at a kiosk until the company secret
// is rotated. Both are base64url(JSON{fields..., sig}) where sig is
// base64url(HMAC-SHA256(secret, fields joined by "|")).
package qrtoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"punchclock/internal/block"
	id "punchclock/pkg/domain"
)

const separator = "|"

var (
	// ErrInvalid covers malformed payloads and signature mismatches alike.
	ErrInvalid = errors.New("invalid qr token")
	// ErrNoSecret means the company has no signing secret yet.
	ErrNoSecret = errors.New("qr signing secret is not set")
)

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DailyClaims are the verified contents of a daily company token.
type DailyClaims struct {
	CompanyID string
	Date      string
}

// EmployeeClaims are the verified contents of an employee token.
type EmployeeClaims struct {
	CompanyID  string
	EmployeeID string
}

type dailyPayload struct {
	CompanyID string `json:"companyId"`
	Date      string `json:"date"`
	Sig       string `json:"sig"`
}

type employeePayload struct {
	CompanyID  string `json:"companyId"`
	EmployeeID string `json:"employeeId"`
	Sig        string `json:"sig"`
}

// BuildDaily signs a token for companyID valid on isoDate (YYYY-MM-DD).
func BuildDaily(companyID id.CompanyID, isoDate, secret string) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}
	c := companyID.String()
	return encode(dailyPayload{CompanyID: c, Date: isoDate, Sig: sign(secret, c, isoDate)})
}

// ParseDaily checks structure and signature. It does not check company or date.
func ParseDaily(token, secret string) (DailyClaims, error) {
	if secret == "" {
		return DailyClaims{}, ErrNoSecret
	}
	var p dailyPayload
	if err := decode(token, &p); err != nil {
		return DailyClaims{}, err
	}
	if p.CompanyID == "" || p.Date == "" || p.Sig == "" || !isoDate.MatchString(p.Date) {
		return DailyClaims{}, ErrInvalid
	}
	if !hmac.Equal([]byte(p.Sig), []byte(sign(secret, p.CompanyID, p.Date))) {
		return DailyClaims{}, ErrInvalid
	}
	return DailyClaims{CompanyID: p.CompanyID, Date: p.Date}, nil
}

// VerifyDaily accepts a token only for companyID on today. Every failure is a
// block: INVALID_QR, or QR_EXPIRED when a genuine token carries another date.
// On QR_EXPIRED the returned claims still carry the token's date.
func VerifyDaily(token, secret string, companyID id.CompanyID, today string) (DailyClaims, error) {
	claims, err := ParseDaily(strings.TrimSpace(token), secret)
	if err != nil {
		return DailyClaims{}, block.New(block.InvalidQR)
	}
	if claims.CompanyID != companyID.String() {
		return DailyClaims{}, block.New(block.InvalidQR)
	}
	if claims.Date != today {
		return claims, block.New(block.QRExpired)
	}
	return claims, nil
}

// BuildEmployee signs a kiosk identification token for one employee.
func BuildEmployee(companyID id.CompanyID, employeeID id.EmployeeID, secret string) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}
	c, e := companyID.String(), employeeID.String()
	return encode(employeePayload{CompanyID: c, EmployeeID: e, Sig: sign(secret, c, e)})
}

// ParseEmployee checks structure and signature. It does not check company.
func ParseEmployee(token, secret string) (EmployeeClaims, error) {
	if secret == "" {
		return EmployeeClaims{}, ErrNoSecret
	}
	var p employeePayload
	if err := decode(token, &p); err != nil {
		return EmployeeClaims{}, err
	}
	if p.CompanyID == "" || p.EmployeeID == "" || p.Sig == "" {
		return EmployeeClaims{}, ErrInvalid
	}
	if !hmac.Equal([]byte(p.Sig), []byte(sign(secret, p.CompanyID, p.EmployeeID))) {
		return EmployeeClaims{}, ErrInvalid
	}
	return EmployeeClaims{CompanyID: p.CompanyID, EmployeeID: p.EmployeeID}, nil
}

// VerifyEmployee accepts a token only for companyID and returns the employee
// it names. Every failure is an INVALID_EMPLOYEE_QR block.
func VerifyEmployee(token, secret string, companyID id.CompanyID) (id.EmployeeID, error) {
	claims, err := ParseEmployee(strings.TrimSpace(token), secret)
	if err != nil || claims.CompanyID != companyID.String() {
		return id.EmployeeID{}, block.New(block.InvalidEmployeeQR)
	}
	employeeID, err := id.ParseEmployeeID(claims.EmployeeID)
	if err != nil {
		return id.EmployeeID{}, block.New(block.InvalidEmployeeQR)
	}
	return employeeID, nil
}

func sign(secret string, fields ...string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strings.Join(fields, separator)))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func encode(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// decode accepts padded and unpadded base64url.
func decode(token string, v any) error {
	if token == "" {
		return ErrInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return ErrInvalid
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return ErrInvalid
	}
	return nil
}
