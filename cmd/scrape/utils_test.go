package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"dorm-menu-csv/internal/config"
	"dorm-menu-csv/internal/menu"

	"github.com/stretchr/testify/require"
)

func TestDormURL(t *testing.T) {
	day := time.Date(2025, time.March, 5, 23, 0, 0, 0, time.UTC)
	require.Equal(t,
		"https://dorm.kyonggi.ac.kr:446/Khostel/mall_main.php?viewform=B0001_foodboard_list&gyear=2025&gmonth=03&gday=05",
		dormURL("https://dorm.kyonggi.ac.kr:446/", day),
	)
}

func TestResolveDay(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	day, err := resolveDay("2025-03-10", loc)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, loc), day)

	_, err = resolveDay("03/10", loc)
	require.Error(t, err)

	before := time.Now()
	day, err = resolveDay("", loc)
	require.NoError(t, err)
	require.Equal(t, loc, day.Location())
	require.False(t, day.Before(before))
}

func TestArtifactName(t *testing.T) {
	cases := []struct {
		csvName  string
		format   string
		expected string
	}{
		{csvName: "dorm_menu.csv", format: "csv", expected: "dorm_menu.csv"},
		{csvName: "out/weekly.txt", format: "csv", expected: "weekly.csv"},
		{csvName: "weekly.csv", format: "json", expected: "weekly.json"},
		{csvName: "menu", format: "csv", expected: "menu.csv"},
		{csvName: "", format: "csv", expected: "dorm_menu.csv"},
	}
	for _, test := range cases {
		require.Equal(t, test.expected, artifactName(test.csvName, test.format), test.csvName)
	}
}

func TestObjectKey(t *testing.T) {
	require.Equal(t, "dorm_menu.csv", objectKey("", "dorm_menu.csv"))
	require.Equal(t, "menus/daily/dorm_menu.csv", objectKey("menus/daily", "dorm_menu.csv"))
}

func TestRenderArtifact(t *testing.T) {
	out := DormOut{
		Menus: []menu.Record{{Date: "03/10(월)", Breakfast: "쌀밥", Lunch: menu.Sentinel, Dinner: "국수"}},
		Meta:  DormMeta{Date: "2025-03-10", Timezone: "Asia/Seoul"},
	}

	data, contentType, err := renderArtifact(out, config.Output{Format: config.FormatCSV, UTF8BOM: false})
	require.NoError(t, err)
	require.Equal(t, contentTypeCSV, contentType)
	require.Equal(t, "date,breakfast,lunch,dinner\r\n03/10(월),쌀밥,미운영,국수\r\n", string(data))

	data, contentType, err = renderArtifact(out, config.Output{Format: config.FormatJSON})
	require.NoError(t, err)
	require.Equal(t, contentTypeJSON, contentType)
	require.Contains(t, string(data), `"lunch": "미운영"`)
	require.Contains(t, string(data), `"timezone": "Asia/Seoul"`)
}

func TestWriteArtifactCreatesDirs(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "b", "menu.csv")
	require.NoError(t, writeArtifact(p, []byte("x")))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	require.Equal(t, "x", string(data))
}
