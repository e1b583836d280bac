package points

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"gradecalc/lib/gradebook"

	"github.com/stretchr/testify/require"
)

func TestParseRows(t *testing.T) {
	f, err := os.Open("testdata/points.html")
	require.NoError(t, err)
	defer f.Close()

	rows, err := ParseRows(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	require.Empty(t, rows[0])
	require.Equal(t, gradebook.Row{"xxxxx017", "2334", ""}, rows[2])
}

func TestFetchRows(t *testing.T) {
	page, err := os.ReadFile("testdata/points.html")
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/~uhl/points.html" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}))
	defer server.Close()

	client := NewClient(ClientOptions{
		Url:     server.URL + "/~uhl/points.html",
		Timeout: 5 * time.Second,
	})
	rows, err := client.FetchRows(context.Background())
	require.NoError(t, err)

	cases := []struct {
		id      string
		grades  []int
		outcome string
	}{
		{id: "017", grades: []int{2, 3, 3, 4}, outcome: "Current average: 3.00 - Good standing, no mandatory final test"},
		{id: "016", grades: []int{5, 5, 5, 5}, outcome: "Current average: 5.00 - Currently not passing"},
		{id: "042", grades: []int{2, 3, 4, 1}, outcome: "Current average: 2.50 - Good standing, no mandatory final test"},
		{id: "099", grades: nil, outcome: gradebook.NoGradesResult},
	}
	for _, test := range cases {
		row, ok := gradebook.Locate(rows, test.id)
		require.True(t, ok, test.id)
		grades := gradebook.Extract(row)
		require.Equal(t, test.grades, grades, test.id)
		require.Equal(t, test.outcome, gradebook.Describe(grades), test.id)
	}

	_, ok := gradebook.Locate(rows, "777")
	require.False(t, ok)
}

func TestFetchRowsBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientOptions{Url: server.URL})
	_, err := client.FetchRows(context.Background())
	require.ErrorContains(t, err, "500")
}

func TestNewClientDefaultUrl(t *testing.T) {
	require.Equal(t, DefaultUrl, NewClient(ClientOptions{}).Url)
}

func TestParseRowsRejectsInvisibleCharacters(t *testing.T) {
	page := "<table>" +
		"<tr><td>0123017</td><td>2\u200b334</td><td>23\u00ad|41</td></tr>" +
		"<tr><td>0\u200b42</td><td>5555</td></tr>" +
		"</table>"
	rows, err := ParseRows(context.Background(), strings.NewReader(page))
	require.NoError(t, err)

	row, ok := gradebook.Locate(rows, "017")
	require.True(t, ok)
	require.Empty(t, gradebook.Extract(row))
	require.Equal(t, gradebook.NoGradesResult, gradebook.Describe(gradebook.Extract(row)))

	_, ok = gradebook.Locate(rows, "042")
	require.False(t, ok)
}
