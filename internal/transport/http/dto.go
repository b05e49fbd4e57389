package httptransport

import (
	"time"

	dashmodels "punchclock/internal/dashboard/models"
	empmodels "punchclock/internal/employee/models"
	"punchclock/internal/geo"
	kioskmodels "punchclock/internal/kiosk/models"
	settingsmodels "punchclock/internal/settings/models"
	tcmodels "punchclock/internal/timeclock/models"
	tcservice "punchclock/internal/timeclock/service"
	id "punchclock/pkg/domain"
	dErrors "punchclock/pkg/domain-errors"
)

type geoRequest struct {
	Lat        *float64  `json:"lat"`
	Lng        *float64  `json:"lng"`
	Accuracy   *float64  `json:"accuracy"`
	CapturedAt time.Time `json:"capturedAt"`
}

type qrRequest struct {
	Token string `json:"token"`
}

type punchRequest struct {
	DeviceID string      `json:"deviceId"`
	Geo      *geoRequest `json:"geo"`
	QR       *qrRequest  `json:"qr"`
}

type punchResponse struct {
	Type      tcmodels.EventType `json:"type"`
	Timestamp time.Time          `json:"timestamp"`
	Method    tcmodels.Method    `json:"method"`
}

type eventResponse struct {
	ID             string             `json:"id"`
	Type           tcmodels.EventType `json:"type"`
	Timestamp      time.Time          `json:"timestamp"`
	Source         tcmodels.Source    `json:"source"`
	Method         tcmodels.Method    `json:"method"`
	DeviceID       string             `json:"deviceId,omitempty"`
	GeoStatus      geo.Status         `json:"geoStatus"`
	DistanceMeters *int               `json:"distanceMeters,omitempty"`
	QRDate         string             `json:"qrDate,omitempty"`
}

type dayStatusResponse struct {
	CurrentType *tcmodels.EventType `json:"currentType"`
	NextType    *tcmodels.EventType `json:"nextType"`
}

type todayResponse struct {
	Status dayStatusResponse `json:"status"`
	Events []eventResponse   `json:"events"`
}

type dailyQRResponse struct {
	Date        string    `json:"date"`
	QRToken     string    `json:"qrToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	DeviceLabel string    `json:"deviceLabel"`
}

type kioskPINRequest struct {
	PIN         string `json:"pin"`
	DeviceLabel string `json:"deviceLabel"`
}

type kioskQRRequest struct {
	Token       string `json:"token"`
	DeviceLabel string `json:"deviceLabel"`
}

type kioskUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type kioskIdentityResponse struct {
	EmployeeID    string              `json:"employeeId"`
	FullName      string              `json:"fullName"`
	User          kioskUser           `json:"user"`
	NextEventType *tcmodels.EventType `json:"nextEventType"`
}

type kioskPunchRequest struct {
	EmployeeID  string               `json:"employeeId"`
	Method      tcmodels.KioskMethod `json:"method"`
	DeviceLabel string               `json:"deviceLabel"`
}

type kioskEmployee struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
}

type kioskPunchResponse struct {
	EventType tcmodels.EventType `json:"eventType"`
	Timestamp time.Time          `json:"timestamp"`
	Employee  kioskEmployee      `json:"employee"`
	StatusNow tcmodels.Status    `json:"statusNow"`
}

type settingsResponse struct {
	GeofenceEnabled      bool                        `json:"geofenceEnabled"`
	GeoRequired          bool                        `json:"geoRequired"`
	GeofenceLat          float64                     `json:"geofenceLat"`
	GeofenceLng          float64                     `json:"geofenceLng"`
	GeofenceRadiusMeters int                         `json:"geofenceRadiusMeters"`
	MaxAccuracyMeters    int                         `json:"maxAccuracyMeters"`
	QREnabled            bool                        `json:"qrEnabled"`
	PunchFallbackMode    settingsmodels.FallbackMode `json:"punchFallbackMode"`
	KioskDeviceLabel     string                      `json:"kioskDeviceLabel"`
	Timezone             string                      `json:"timezone"`
	UpdatedAt            time.Time                   `json:"updatedAt"`
}

type updateSettingsRequest struct {
	GeofenceEnabled      *bool                        `json:"geofenceEnabled"`
	GeoRequired          *bool                        `json:"geoRequired"`
	GeofenceLat          *float64                     `json:"geofenceLat"`
	GeofenceLng          *float64                     `json:"geofenceLng"`
	GeofenceRadiusMeters *int                         `json:"geofenceRadiusMeters"`
	MaxAccuracyMeters    *int                         `json:"maxAccuracyMeters"`
	QREnabled            *bool                        `json:"qrEnabled"`
	PunchFallbackMode    *settingsmodels.FallbackMode `json:"punchFallbackMode"`
	KioskDeviceLabel     *string                      `json:"kioskDeviceLabel"`
	Timezone             *string                      `json:"timezone"`
}

type setPINRequest struct {
	PIN string `json:"pin"`
}

type pinResponse struct {
	PIN string `json:"pin"`
}

type employeeQRResponse struct {
	Token string `json:"token"`
}

type createEmployeeRequest struct {
	UserID   string `json:"userId"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type updateEmployeeRequest struct {
	FullName *string `json:"fullName"`
	IsActive *bool   `json:"isActive"`
}

type employeeResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"isActive"`
	HasPIN    bool      `json:"hasPin"`
	CreatedAt time.Time `json:"createdAt"`
}

type dashboardSummaryResponse struct {
	Date                 string    `json:"date"`
	TotalActiveEmployees int       `json:"totalActiveEmployees"`
	WorkingNow           int       `json:"workingNow"`
	OnBreakNow           int       `json:"onBreakNow"`
	OutNow               int       `json:"outNow"`
	NotStartedYet        int       `json:"notStartedYet"`
	BlockedAttemptsToday int       `json:"blockedAttemptsToday"`
	LastUpdatedAt        time.Time `json:"lastUpdatedAt"`
}

type dashboardLiveRow struct {
	EmployeeID           string              `json:"employeeId"`
	FullName             string              `json:"fullName"`
	Email                string              `json:"email"`
	IsActive             bool                `json:"isActive"`
	StatusNow            dashmodels.Status   `json:"statusNow"`
	LastEventType        *tcmodels.EventType `json:"lastEventType"`
	LastEventTime        *time.Time          `json:"lastEventTime"`
	GeoStatus            *geo.Status         `json:"geoStatus"`
	LastDistanceMeters   *int                `json:"lastDistanceMeters"`
	BlockedAttemptsToday int                 `json:"blockedAttemptsToday"`
}

// reading converts the optional geo payload. Coordinates and accuracy are
// all required once a geo object is sent.
func (g *geoRequest) reading() (*geo.Reading, bool) {
	if g == nil {
		return nil, true
	}
	if g.Lat == nil || g.Lng == nil || g.Accuracy == nil {
		return nil, false
	}
	return &geo.Reading{
		Lat:            *g.Lat,
		Lng:            *g.Lng,
		AccuracyMeters: *g.Accuracy,
		CapturedAt:     g.CapturedAt,
	}, true
}

func (r updateSettingsRequest) toUpdate() settingsmodels.Update {
	return settingsmodels.Update{
		GeofenceEnabled:   r.GeofenceEnabled,
		GeoRequired:       r.GeoRequired,
		CenterLat:         r.GeofenceLat,
		CenterLng:         r.GeofenceLng,
		RadiusMeters:      r.GeofenceRadiusMeters,
		MaxAccuracyMeters: r.MaxAccuracyMeters,
		QREnabled:         r.QREnabled,
		FallbackMode:      r.PunchFallbackMode,
		KioskDeviceLabel:  r.KioskDeviceLabel,
		Timezone:          r.Timezone,
	}
}

func (r createEmployeeRequest) toNewEmployee() (empmodels.NewEmployee, error) {
	in := empmodels.NewEmployee{FullName: r.FullName, Email: r.Email}
	if r.UserID != "" {
		userID, err := id.ParseUserID(r.UserID)
		if err != nil {
			return empmodels.NewEmployee{}, dErrors.New(dErrors.CodeInvalidInput, "userId must be a UUID")
		}
		in.UserID = userID
	}
	return in, nil
}

func (r updateEmployeeRequest) toUpdate() empmodels.Update {
	return empmodels.Update{FullName: r.FullName, IsActive: r.IsActive}
}

func toEmployeeResponse(p *empmodels.Profile) employeeResponse {
	return employeeResponse{
		ID:        p.ID.String(),
		UserID:    p.UserID.String(),
		FullName:  p.FullName,
		Email:     p.Email,
		IsActive:  p.IsActive,
		HasPIN:    p.PINHash != "",
		CreatedAt: p.CreatedAt,
	}
}

func toDashboardSummary(s *dashmodels.Summary) dashboardSummaryResponse {
	return dashboardSummaryResponse{
		Date:                 s.Date,
		TotalActiveEmployees: s.TotalActiveEmployees,
		WorkingNow:           s.WorkingNow,
		OnBreakNow:           s.OnBreakNow,
		OutNow:               s.OutNow,
		NotStartedYet:        s.NotStartedYet,
		BlockedAttemptsToday: s.BlockedAttemptsToday,
		LastUpdatedAt:        s.LastUpdatedAt,
	}
}

func toDashboardLive(rows []dashmodels.LiveRow) []dashboardLiveRow {
	out := make([]dashboardLiveRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dashboardLiveRow{
			EmployeeID:           r.EmployeeID.String(),
			FullName:             r.FullName,
			Email:                r.Email,
			IsActive:             r.IsActive,
			StatusNow:            r.StatusNow,
			LastEventType:        r.LastEventType,
			LastEventTime:        r.LastEventTime,
			GeoStatus:            r.GeoStatus,
			LastDistanceMeters:   r.LastDistanceMeters,
			BlockedAttemptsToday: r.BlockedAttemptsToday,
		})
	}
	return out
}

func toEventResponse(e tcmodels.Event) eventResponse {
	return eventResponse{
		ID:             e.ID.String(),
		Type:           e.Type,
		Timestamp:      e.Timestamp,
		Source:         e.Source,
		Method:         e.Method,
		DeviceID:       e.DeviceID,
		GeoStatus:      e.GeoStatus,
		DistanceMeters: e.DistanceMeters,
		QRDate:         e.QRDate,
	}
}

func toEventResponses(events []tcmodels.Event) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	return out
}

func optionalType(t tcmodels.EventType) *tcmodels.EventType {
	if t == "" {
		return nil
	}
	return &t
}

func toSettingsResponse(s *settingsmodels.Settings) settingsResponse {
	return settingsResponse{
		GeofenceEnabled:      s.GeofenceEnabled,
		GeoRequired:          s.GeoRequired,
		GeofenceLat:          s.CenterLat,
		GeofenceLng:          s.CenterLng,
		GeofenceRadiusMeters: s.RadiusMeters,
		MaxAccuracyMeters:    s.MaxAccuracyMeters,
		QREnabled:            s.QREnabled,
		PunchFallbackMode:    s.FallbackMode,
		KioskDeviceLabel:     s.KioskDeviceLabel,
		Timezone:             s.Timezone,
		UpdatedAt:            s.UpdatedAt,
	}
}

func toKioskIdentity(i *kioskmodels.Identity) kioskIdentityResponse {
	return kioskIdentityResponse{
		EmployeeID:    i.EmployeeID.String(),
		FullName:      i.FullName,
		User:          kioskUser{ID: i.UserID.String(), Email: i.Email},
		NextEventType: optionalType(tcmodels.EventType(i.NextEventType)),
	}
}

func toKioskPunch(r *tcservice.KioskPunchResult) kioskPunchResponse {
	return kioskPunchResponse{
		EventType: r.Event.Type,
		Timestamp: r.Event.Timestamp,
		Employee:  kioskEmployee{ID: r.Employee.ID.String(), FullName: r.Employee.FullName},
		StatusNow: r.StatusNow,
	}
}
