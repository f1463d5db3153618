package analytics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rankscraper/fetch"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(fetch.NewClient(5*time.Second, "", nil), srv.URL, nil), srv
}

func TestFetchPointsSkipsFailures(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("pid") {
		case "good":
			w.Write([]byte(`<p>Your business was found at 40.5, -73.5 here.</p>`))
		case "empty":
			w.Write([]byte(`<p>no coordinates in this one</p>`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	candidates := []Candidate{
		{URL: "/analytics/GetResults?search_guid=" + candidateGUID + "&pid=broken", SearchGUID: candidateGUID, PID: "broken"},
		{URL: "/analytics/GetResults?search_guid=" + candidateGUID + "&pid=empty", SearchGUID: candidateGUID, PID: "empty"},
		{URL: "/analytics/GetResults?search_guid=" + candidateGUID + "&pid=good", SearchGUID: candidateGUID, PID: "good"},
	}

	points := c.FetchPoints(candidates)
	require.Len(t, points, 1)
	assert.Equal(t, 40.5, points[0].Lat)
	assert.Equal(t, -73.5, points[0].Lon)
	assert.Equal(t, "good", points[0].PID)
	assert.Equal(t, candidateGUID, points[0].SearchGUID)
	assert.Contains(t, points[0].SourceURL, "pid=good")
}

func TestGetCompetitorsListJSON(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/scans/get-competitors-list", r.URL.Path)
		assert.Equal(t, candidateGUID, r.URL.Query().Get("scan_guid"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"competitors": [{"name": "Joe's Pizza"}]}`))
	})

	payload, err := c.GetCompetitorsList(candidateGUID)
	require.NoError(t, err)
	assert.Contains(t, payload, "competitors")

	_, err = c.GetCompetitorsList("")
	assert.Error(t, err)
}

func TestCallEndpointHTMLPayload(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<div class="modal-body"><b>details</b></div>
<table><tr><th>rank</th><th>name</th></tr><tr><td>1</td><td>Joe's Pizza</td></tr></table>`))
	})

	payload, err := c.CallEndpoint("/analytics/GetResults?search_guid=x&pid=y")
	require.NoError(t, err)
	assert.Contains(t, payload["modal_content"], "details")
	assert.Equal(t, [][]string{{"rank", "name"}, {"1", "Joe's Pizza"}}, payload["table_0"])
}

func TestGetResultsValidation(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {})
	_, err := c.GetResults("", "pid")
	assert.Error(t, err)
	_, err = c.GetResults("guid", "")
	assert.Error(t, err)
}
