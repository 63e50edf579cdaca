package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr1hm/quake-predictor/internal/models"
)

const usgsFixture = `{
  "type": "FeatureCollection",
  "features": [
    {"id": "us7000abcd", "properties": {"mag": 5.4, "place": "Honshu", "time": 1712836800000},
     "geometry": {"type": "Point", "coordinates": [139.7, 35.1, 24.5]}},
    {"id": "ak0001", "properties": {"mag": null, "place": "Alaska", "time": 1712836800000},
     "geometry": {"type": "Point", "coordinates": [-150.1, 61.2]}},
    {"id": "broken", "properties": {"mag": 3.0, "time": 0},
     "geometry": {"type": "Point", "coordinates": []}}
  ]
}`

const gdacsFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:gdacs="http://www.gdacs.org" xmlns:georss="http://www.georss.org/georss" xmlns:geo="http://www.w3.org/2003/01/geo/wgs84_pos#">
<channel>
  <title>GDACS</title>
  <item>
    <title>Green earthquake alert in Chile</title>
    <description>On 4/11/2024, an earthquake of magnitude 6.1 occurred.</description>
    <pubDate>Thu, 11 Apr 2024 12:00:00 GMT</pubDate>
    <gdacs:eventtype>EQ</gdacs:eventtype>
    <gdacs:severity unit="M" value="6.1">Magnitude 6.1M, Depth:35.2km</gdacs:severity>
    <georss:point>-33.4 -70.6</georss:point>
  </item>
  <item>
    <title>Tropical cyclone</title>
    <description>Not an earthquake.</description>
    <gdacs:eventtype>TC</gdacs:eventtype>
    <georss:point>15 120</georss:point>
  </item>
  <item>
    <title>Earthquake in Greece</title>
    <description>Magnitude 4.7M, Depth:10km</description>
    <gdacs:eventtype>EQ</gdacs:eventtype>
    <geo:lat>38.2</geo:lat>
    <geo:long>21.7</geo:long>
  </item>
  <item>
    <title>Earthquake somewhere</title>
    <gdacs:eventtype>EQ</gdacs:eventtype>
  </item>
</channel>
</rss>`

func TestFetchUSGS(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/geo+json")
		w.Write([]byte(usgsFixture))
	}))
	defer srv.Close()

	records, err := fetchUSGS(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, models.String("2024-04-11T12:00:00.000Z"), records[0].Time)
	assert.Equal(t, models.Number(5.4), records[0].Magnitude)
	assert.Equal(t, models.Number(35.1), records[0].Latitude)
	assert.Equal(t, models.Number(139.7), records[0].Longitude)
	assert.Equal(t, models.Number(24.5), records[0].Depth)

	assert.True(t, records[1].Magnitude.IsAbsent())
	assert.True(t, records[1].Depth.IsAbsent())
}

func TestFetchUSGS_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := fetchUSGS(context.Background(), srv.Client(), srv.URL)
	assert.ErrorContains(t, err, "503")
}

func TestGDACSRecords(t *testing.T) {
	feed, err := gofeed.NewParser().ParseString(gdacsFixture)
	require.NoError(t, err)

	records := gdacsRecords(feed)
	require.Len(t, records, 2)

	chile := records[0]
	assert.Equal(t, models.Number(6.1), chile.Magnitude)
	assert.Equal(t, models.Number(35.2), chile.Depth)
	assert.Equal(t, models.Number(-33.4), chile.Latitude)
	assert.Equal(t, models.Number(-70.6), chile.Longitude)
	assert.Equal(t, models.String("2024-04-11T12:00:00.000Z"), chile.Time)

	// no severity element: magnitude and depth come from the text
	greece := records[1]
	assert.Equal(t, models.Number(4.7), greece.Magnitude)
	assert.Equal(t, models.Number(10), greece.Depth)
	assert.Equal(t, models.Number(38.2), greece.Latitude)
	assert.Equal(t, models.Number(21.7), greece.Longitude)
	assert.True(t, greece.Time.IsAbsent())
}
