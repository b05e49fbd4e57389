package resolver

//go:generate mockgen -source=resolver.go -destination=mocks/mocks.go -package=mocks AuditRecorder

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"punchclock/internal/block"
	"punchclock/internal/geo"
	"punchclock/internal/qrtoken"
	settingsmodels "punchclock/internal/settings/models"
	"punchclock/internal/timeclock/models"
	"punchclock/internal/timeclock/resolver/mocks"
	id "punchclock/pkg/domain"
	audit "punchclock/pkg/platform/audit"
	"punchclock/pkg/testutil"
)

const (
	secret = "company-secret"
	today  = "2025-06-02"
)

var (
	company = id.CompanyID(uuid.MustParse("6f1a3c64-0d1e-4a57-9b0e-5a8f0f6f2c11"))

	inside  = &geo.Reading{Lat: 0.0010, Lng: 0, AccuracyMeters: 10}
	outside = &geo.Reading{Lat: 0.0020, Lng: 0, AccuracyMeters: 10}
	blurry  = &geo.Reading{Lat: 0, Lng: 0, AccuracyMeters: 500}
)

func policy(mode settingsmodels.FallbackMode) Policy {
	return Policy{
		CompanyID: company,
		Geo: geo.Policy{
			GeofenceEnabled:   true,
			GeoRequired:       true,
			RadiusMeters:      200,
			MaxAccuracyMeters: 100,
		},
		QREnabled: true,
		Mode:      mode,
		Secret:    secret,
	}
}

func validQR(t *testing.T) string {
	t.Helper()
	token, err := qrtoken.BuildDaily(company, today, secret)
	require.NoError(t, err)
	return token
}

func TestRouteTable(t *testing.T) {
	assert.Equal(t, acceptGeo, routes[settingsmodels.FallbackGeoOnly][geoPassed])
	assert.Equal(t, rejectGeo, routes[settingsmodels.FallbackGeoOnly][geoUnavailable])
	assert.Equal(t, rejectGeo, routes[settingsmodels.FallbackGeoOnly][geoOutside])
	assert.Equal(t, acceptGeo, routes[settingsmodels.FallbackGeoOrQR][geoPassed])
	assert.Equal(t, fallbackToQR, routes[settingsmodels.FallbackGeoOrQR][geoUnavailable])
	assert.Equal(t, rejectGeo, routes[settingsmodels.FallbackGeoOrQR][geoOutside])
	_, hasQROnly := routes[settingsmodels.FallbackQROnly]
	assert.False(t, hasQROnly, "QR_ONLY never evaluates geolocation")
}

func TestResolve(t *testing.T) {
	qr := validQR(t)

	cases := []struct {
		name    string
		mode    settingsmodels.FallbackMode
		reading *geo.Reading
		token   string
		mutate  func(*Policy)
		method  models.Method
		code    block.Code
	}{
		{name: "inside accepted by geo", mode: settingsmodels.FallbackGeoOrQR, reading: inside, method: models.MethodGeo},
		{name: "outside never waived by qr", mode: settingsmodels.FallbackGeoOrQR, reading: outside, token: qr, code: block.OutsideGeofence},
		{name: "missing geo falls back to qr", mode: settingsmodels.FallbackGeoOrQR, token: qr, method: models.MethodQR},
		{name: "low accuracy falls back to qr", mode: settingsmodels.FallbackGeoOrQR, reading: blurry, token: qr, method: models.MethodQR},
		{name: "missing geo without qr", mode: settingsmodels.FallbackGeoOrQR, code: block.GeoFailedQRRequired},
		{name: "fallback with qr disabled", mode: settingsmodels.FallbackGeoOrQR, mutate: func(p *Policy) { p.QREnabled = false }, code: block.QRDisabled},
		{name: "fallback with bad qr", mode: settingsmodels.FallbackGeoOrQR, token: "garbage", code: block.InvalidQR},
		{name: "geo only blocks low accuracy", mode: settingsmodels.FallbackGeoOnly, reading: blurry, token: qr, code: block.LowAccuracy},
		{name: "geo only blocks missing geo", mode: settingsmodels.FallbackGeoOnly, token: qr, code: block.GeoRequired},
		{name: "geo optional accepts missing", mode: settingsmodels.FallbackGeoOnly, mutate: func(p *Policy) { p.Geo.GeoRequired = false }, method: models.MethodGeo},
		{name: "qr only ignores geo", mode: settingsmodels.FallbackQROnly, reading: outside, token: qr, method: models.MethodQR},
		{name: "qr only without token", mode: settingsmodels.FallbackQROnly, reading: inside, code: block.InvalidQR},
		{name: "qr only disabled", mode: settingsmodels.FallbackQROnly, token: qr, mutate: func(p *Policy) { p.QREnabled = false }, code: block.QRDisabled},
		{name: "qr only without secret", mode: settingsmodels.FallbackQROnly, token: qr, mutate: func(p *Policy) { p.Secret = "" }, code: block.InvalidQR},
		{name: "unknown mode behaves as geo or qr", mode: "NFC", token: qr, method: models.MethodQR},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := policy(tc.mode)
			if tc.mutate != nil {
				tc.mutate(&p)
			}
			res, denial := Resolve(p, Attempt{Reading: tc.reading, QRToken: tc.token, Today: today})
			if tc.code != "" {
				require.NotNil(t, denial)
				assert.Equal(t, tc.code, denial.Err.Code)
				return
			}
			require.Nil(t, denial)
			assert.Equal(t, tc.method, res.Method)
		})
	}
}

func TestResolveDiagnostics(t *testing.T) {
	t.Run("outside carries distance and radius", func(t *testing.T) {
		_, denial := Resolve(policy(settingsmodels.FallbackGeoOrQR), Attempt{Reading: outside, Today: today})
		require.NotNil(t, denial)
		assert.Equal(t, models.MethodGeo, denial.MethodAttempted)
		assert.Equal(t, geo.StatusOutside, denial.GeoStatus)
		require.NotNil(t, denial.DistanceMeters)
		assert.InDelta(t, 222, *denial.DistanceMeters, 1)
		require.NotNil(t, denial.RadiusMeters)
		assert.Equal(t, 200, *denial.RadiusMeters)
		require.NotNil(t, denial.AccuracyMeters)
		assert.Equal(t, 10.0, *denial.AccuracyMeters)
	})

	t.Run("geo failure without qr reports the geo attempt", func(t *testing.T) {
		_, denial := Resolve(policy(settingsmodels.FallbackGeoOrQR), Attempt{Reading: blurry, Today: today})
		require.NotNil(t, denial)
		assert.Equal(t, block.GeoFailedQRRequired, denial.Err.Code)
		assert.Equal(t, models.MethodGeo, denial.MethodAttempted)
		assert.Equal(t, geo.StatusLowAccuracy, denial.GeoStatus)
	})

	t.Run("expired qr keeps the token date", func(t *testing.T) {
		stale, err := qrtoken.BuildDaily(company, "2025-06-01", secret)
		require.NoError(t, err)
		_, denial := Resolve(policy(settingsmodels.FallbackQROnly), Attempt{QRToken: stale, Today: today})
		require.NotNil(t, denial)
		assert.Equal(t, block.QRExpired, denial.Err.Code)
		assert.Equal(t, "2025-06-01", denial.QRDate)
	})

	t.Run("qr acceptance stores no geo", func(t *testing.T) {
		res, denial := Resolve(policy(settingsmodels.FallbackGeoOrQR), Attempt{Reading: blurry, QRToken: validQR(t), Today: today})
		require.Nil(t, denial)
		assert.Equal(t, geo.StatusMissing, res.GeoStatus)
		assert.Nil(t, res.Reading)
		assert.Equal(t, today, res.QRDate)
	})
}

func TestQRFallbackScenarios(t *testing.T) {
	testutil.Given(t, "a GEO_OR_QR company and a kiosk QR for today", func(t *testing.T) {
		p := policy(settingsmodels.FallbackGeoOrQR)
		qr := validQR(t)

		testutil.When(t, "the phone reports a location outside the perimeter", func(t *testing.T) {
			testutil.Then(t, "the QR does not rescue the punch", func(t *testing.T) {
				_, denial := Resolve(p, Attempt{Reading: outside, QRToken: qr, Today: today})
				require.NotNil(t, denial)
				assert.Equal(t, block.OutsideGeofence, denial.Err.Code)
			})
		})

		testutil.When(t, "the phone cannot get a precise fix", func(t *testing.T) {
			testutil.Then(t, "the QR authorizes the punch", func(t *testing.T) {
				res, denial := Resolve(p, Attempt{Reading: blurry, QRToken: qr, Today: today})
				require.Nil(t, denial)
				assert.Equal(t, models.MethodQR, res.Method)
			})
		})
	})
}

type ResolverSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	recorder *mocks.MockAuditRecorder
	resolver *Resolver
	actor    id.UserID
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.recorder = mocks.NewMockAuditRecorder(s.ctrl)
	s.resolver = New(WithAuditRecorder(s.recorder))
	s.actor = id.UserID(uuid.New())
}

func (s *ResolverSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ResolverSuite) TestBlockIsAuditedBeforeReturn() {
	var recorded *audit.Event
	s.recorder.EXPECT().RecordBlocked(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, e audit.Event) { recorded = &e })

	_, err := s.resolver.ResolvePunch(context.Background(), s.actor,
		policy(settingsmodels.FallbackGeoOrQR), Attempt{Reading: outside, Today: today})

	s.Require().True(block.Is(err, block.OutsideGeofence))
	s.Require().NotNil(recorded, "audit must be written before the block is returned")
	s.Equal(audit.ActionTimeclockPunchBlocked, recorded.Action)
	s.Equal(string(block.OutsideGeofence), recorded.Reason)
	s.Equal("GEO", recorded.MethodAttempted)
	s.Equal("OUTSIDE", recorded.GeoStatus)
	s.Equal(s.actor, recorded.ActorID)
	s.Equal(company, recorded.CompanyID)
}

func (s *ResolverSuite) TestQRDenialRecordsDisposition() {
	s.recorder.EXPECT().RecordBlocked(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, e audit.Event) {
			s.Equal("QR", e.MethodAttempted)
			s.Equal(string(block.InvalidQR), e.QRDisposition)
		})

	_, err := s.resolver.ResolvePunch(context.Background(), s.actor,
		policy(settingsmodels.FallbackQROnly), Attempt{QRToken: "not-a-token", Today: today})
	s.True(block.Is(err, block.InvalidQR))
}

func (s *ResolverSuite) TestSuccessIsNotAuditedHere() {
	res, err := s.resolver.ResolvePunch(context.Background(), s.actor,
		policy(settingsmodels.FallbackGeoOrQR), Attempt{Reading: inside, Today: today})
	s.Require().NoError(err)
	s.Equal(models.MethodGeo, res.Method)
}
