package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/ougirez/hcdash/internal/domain"
	"github.com/ougirez/hcdash/internal/pkg/config"
	"github.com/ougirez/hcdash/internal/pkg/constants"
	"github.com/ougirez/hcdash/internal/pkg/store"
	"github.com/ougirez/hcdash/internal/service/narrative"
	"github.com/ougirez/hcdash/internal/service/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	*httptest.Server
	client   *http.Client
	sessions *session.Service
}

func newTestServer(t *testing.T, delay time.Duration) *testServer {
	t.Helper()

	st := store.NewStore()
	sessions := session.NewSessionService(narrative.NewNarrativeService(st), session.WithDelay(delay))
	svc, err := NewAPIService(st, sessions, &config.Config{
		HTTPAddr:             ":0",
		AllowOrigins:         []string{"http://localhost:3000"},
		AnalysisDelay:        delay,
		SessionSecret:        "test-secret",
		SessionTTL:           time.Hour,
		SessionSweepInterval: time.Minute,
		LogLevel:             "debug",
		LogFormat:            "console",
	})
	require.NoError(t, err)

	srv := httptest.NewServer(svc.Handler())
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		srv.Close()
		sessions.Wait()
	})

	return &testServer{Server: srv, client: &http.Client{Jar: jar}, sessions: sessions}
}

func (s *testServer) do(t *testing.T, method, path string, body *bytes.Buffer, contentType string) *http.Response {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req, err := http.NewRequest(method, s.URL+path, body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	resp, err := s.client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

type upload struct {
	name, contentType string
	size              int
}

func multipartBody(t *testing.T, files ...upload) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, f.name))
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte("x"), f.size))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, 0)
	resp := srv.do(t, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHospitals(t *testing.T) {
	srv := newTestServer(t, 0)

	resp := srv.do(t, http.MethodGet, "/api/v1/hospitals", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	options := decode[[]domain.HospitalOption](t, resp)
	require.Len(t, options, 2)
	assert.Equal(t, domain.HospitalMain, options[0].ID)
	assert.Equal(t, "Emory University Hospital - Atlanta, GA", options[0].Label)

	resp = srv.do(t, http.MethodGet, "/api/v1/hospitals/emory-midtown", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	h := decode[domain.Hospital](t, resp)
	assert.Equal(t, 2022, h.Financials[2].Year)

	resp = srv.do(t, http.MethodGet, "/api/v1/hospitals/emory-main/dashboard", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	d := decode[domain.Dashboard](t, resp)
	assert.Equal(t, "Emory University Hospital (Main Campus)", d.Title)

	resp = srv.do(t, http.MethodGet, "/api/v1/hospitals/emory-east", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decode[domain.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusBadRequest, e.Code)
}

func TestSession_MissingInput(t *testing.T) {
	srv := newTestServer(t, 0)

	resp := srv.do(t, http.MethodPost, "/api/v1/session/narrative", nil, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decode[domain.ErrorResponse](t, resp)
	assert.Equal(t, constants.ErrMissingInput.Error(), e.Message)

	resp = srv.do(t, http.MethodGet, "/api/v1/session", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decode[domain.SessionSnapshot](t, resp)
	assert.Equal(t, domain.FlowCollecting, snap.State)
	assert.False(t, snap.CanAnalyze)
}

func TestSession_SelectHospitalValidation(t *testing.T) {
	srv := newTestServer(t, 0)

	resp := srv.do(t, http.MethodPut, "/api/v1/session/hospital", bytes.NewBufferString(`{"hospital_id":"emory-east"}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = srv.do(t, http.MethodPut, "/api/v1/session/hospital", bytes.NewBufferString(`{"hospital_id":"emory-main"}`), "application/json")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = srv.do(t, http.MethodPut, "/api/v1/session/hospital", bytes.NewBufferString(`{"hospital_id":""}`), "application/json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decode[domain.SessionSnapshot](t, resp)
	assert.Equal(t, domain.HospitalID(0), snap.HospitalID)
}

func TestSession_FullFlow(t *testing.T) {
	srv := newTestServer(t, 10*time.Millisecond)

	body, ct := multipartBody(t,
		upload{name: "hcris_2022.csv", contentType: constants.MIMETypeCSV, size: 3072},
		upload{name: "readme.txt", contentType: "text/plain", size: 12},
	)
	resp := srv.do(t, http.MethodPost, "/api/v1/session/files?source=drop", body, ct)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decode[domain.SessionSnapshot](t, resp)
	require.Len(t, snap.Files, 1)
	assert.Equal(t, "3.0 KB", snap.Files[0].SizeText)

	resp = srv.do(t, http.MethodPut, "/api/v1/session/hospital", bytes.NewBufferString(`{"hospital_id":"emory-main"}`), "application/json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap = decode[domain.SessionSnapshot](t, resp)
	assert.True(t, snap.CanAnalyze)

	resp = srv.do(t, http.MethodPost, "/api/v1/session/narrative", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap = decode[domain.SessionSnapshot](t, resp)
	assert.Equal(t, domain.FlowShowing, snap.State)
	require.NotNil(t, snap.Dashboard)
	assert.Equal(t, "Emory University Hospital (Main Campus)", snap.Dashboard.Title)

	resp = srv.do(t, http.MethodDelete, "/api/v1/session/files/0", nil, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = srv.do(t, http.MethodPost, "/api/v1/session/back", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap = decode[domain.SessionSnapshot](t, resp)
	assert.Equal(t, domain.FlowCollecting, snap.State)
	assert.Nil(t, snap.Dashboard)
	assert.Len(t, snap.Files, 1)

	resp = srv.do(t, http.MethodDelete, "/api/v1/session/files/0", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = srv.do(t, http.MethodDelete, "/api/v1/session/files/0", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSession_NarrativeNoWait(t *testing.T) {
	srv := newTestServer(t, 50*time.Millisecond)

	body, ct := multipartBody(t, upload{name: "a.csv", contentType: constants.MIMETypeCSV, size: 10})
	srv.do(t, http.MethodPost, "/api/v1/session/files", body, ct)
	srv.do(t, http.MethodPut, "/api/v1/session/hospital", bytes.NewBufferString(`{"hospital_id":"emory-midtown"}`), "application/json")

	resp := srv.do(t, http.MethodPost, "/api/v1/session/narrative?wait=false", nil, "")
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	snap := decode[domain.SessionSnapshot](t, resp)
	assert.Equal(t, domain.FlowBusy, snap.State)

	resp = srv.do(t, http.MethodPost, "/api/v1/session/narrative", nil, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	srv.sessions.Wait()
	resp = srv.do(t, http.MethodGet, "/api/v1/session", nil, "")
	snap = decode[domain.SessionSnapshot](t, resp)
	assert.Equal(t, domain.FlowShowing, snap.State)
}

func TestSession_ForgedCookieStartsFresh(t *testing.T) {
	srv := newTestServer(t, 0)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/session", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: constants.CookieKeySession, Value: "forged"})

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var issued bool
	for _, c := range resp.Cookies() {
		if c.Name == constants.CookieKeySession && c.Value != "forged" {
			issued = true
		}
	}
	assert.True(t, issued)
}

func TestSession_ActiveSessionOutlivesTTL(t *testing.T) {
	var skew atomic.Int64
	prev := jwt.TimeFunc
	jwt.TimeFunc = func() time.Time { return time.Now().Add(time.Duration(skew.Load())) }
	t.Cleanup(func() { jwt.TimeFunc = prev })

	// the test server issues cookies valid for one hour
	srv := newTestServer(t, 0)

	resp := srv.do(t, http.MethodPut, "/api/v1/session/hospital", bytes.NewBufferString(`{"hospital_id":"emory-main"}`), "application/json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	first := decode[domain.SessionSnapshot](t, resp)

	skew.Store(int64(40 * time.Minute))
	resp = srv.do(t, http.MethodGet, "/api/v1/session", nil, "")
	require.Equal(t, first.ID, decode[domain.SessionSnapshot](t, resp).ID)

	// 80 minutes after the first cookie, 40 after the last request
	skew.Store(int64(80 * time.Minute))
	resp = srv.do(t, http.MethodGet, "/api/v1/session", nil, "")
	last := decode[domain.SessionSnapshot](t, resp)
	assert.Equal(t, first.ID, last.ID)
	assert.Equal(t, domain.HospitalMain, last.HospitalID)

	// idle past the TTL the cookie no longer resolves
	skew.Store(int64(150 * time.Minute))
	resp = srv.do(t, http.MethodGet, "/api/v1/session", nil, "")
	assert.NotEqual(t, first.ID, decode[domain.SessionSnapshot](t, resp).ID)
}

func page(t *testing.T, resp *http.Response) *goquery.Document {
	t.Helper()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return doc
}

func TestIndex_Collecting(t *testing.T) {
	srv := newTestServer(t, 0)

	doc := page(t, srv.do(t, http.MethodGet, "/", nil, ""))
	options := doc.Find(`select[name="hospital_id"] option`)
	require.Equal(t, 3, options.Length())
	assert.Equal(t, "Choose a hospital...", options.First().Text())
	assert.Equal(t, "Emory University Hospital Midtown - Atlanta, GA", options.Last().Text())

	button := doc.Find(`form[action="/ui/narrative"] button`)
	_, disabled := button.Attr("disabled")
	assert.True(t, disabled)
	assert.Zero(t, doc.Find("script:contains('alert(')").Length())
}

func TestIndex_NoticeShownOnce(t *testing.T) {
	srv := newTestServer(t, 0)

	// the client follows the 303 back to the page
	doc := page(t, srv.do(t, http.MethodPost, "/ui/narrative", nil, ""))
	script := doc.Find("script:contains('alert(')")
	require.Equal(t, 1, script.Length())
	assert.Contains(t, script.Text(), "Please upload CSV files and select a hospital")

	doc = page(t, srv.do(t, http.MethodGet, "/", nil, ""))
	assert.Zero(t, doc.Find("script:contains('alert(')").Length())
}

func TestIndex_FullFlow(t *testing.T) {
	srv := newTestServer(t, 10*time.Millisecond)

	body, ct := multipartBody(t, upload{name: "hcris_2021.csv", contentType: "application/vnd.ms-excel", size: 1536})
	doc := page(t, srv.do(t, http.MethodPost, "/ui/files", body, ct))
	files := doc.Find("#files li")
	require.Equal(t, 1, files.Length())
	assert.Contains(t, files.Text(), "hcris_2021.csv")
	assert.Contains(t, files.Text(), "(1.5 KB)")

	form := bytes.NewBufferString("hospital_id=emory-midtown")
	doc = page(t, srv.do(t, http.MethodPost, "/ui/hospital", form, "application/x-www-form-urlencoded"))
	selected, _ := doc.Find("option[selected]").Attr("value")
	assert.Equal(t, "emory-midtown", selected)
	_, disabled := doc.Find(`form[action="/ui/narrative"] button`).Attr("disabled")
	assert.False(t, disabled)

	srv.do(t, http.MethodPost, "/ui/narrative", nil, "")
	srv.sessions.Wait()

	doc = page(t, srv.do(t, http.MethodGet, "/", nil, ""))
	assert.Equal(t, "Emory University Hospital Midtown", strings.TrimSpace(doc.Find("h1").First().Text()))
	assert.Contains(t, doc.Text(), "Analysis Generated")
	assert.Contains(t, doc.Find("#labor").Text(), "Workforce Stability")
	point := doc.Find("#labor .banner p").First()
	assert.Zero(t, point.Find("b").Length(), "untitled point has no label")
	assert.True(t, strings.HasPrefix(point.Text(), "No contract labor"))
	assert.Zero(t, doc.Find("#labor .banner:contains('Contract Labor Alert')").Length())

	doc = page(t, srv.do(t, http.MethodPost, "/ui/back", nil, ""))
	assert.Equal(t, 1, doc.Find("#files li").Length())

	// picking the placeholder clears the selection again
	form = bytes.NewBufferString("hospital_id=")
	doc = page(t, srv.do(t, http.MethodPost, "/ui/hospital", form, "application/x-www-form-urlencoded"))
	assert.Zero(t, doc.Find("option[selected]").Length())
	_, disabled = doc.Find(`form[action="/ui/narrative"] button`).Attr("disabled")
	assert.True(t, disabled)
}
