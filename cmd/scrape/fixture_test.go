package main

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
)

const schedulePage = `<html><head>
<meta http-equiv="Content-Type" content="text/html; charset=euc-kr">
</head><body>
<table class="boxstyle02">
<thead><tr><th>날짜</th><th>조식</th><th>중식</th><th>석식</th></tr></thead>
<tbody>
<tr><th><a href="#">03/10(월)</a></th><td>쌀밥<br>된장국</td><td></td><td>제육볶음</td></tr>
<tr><th><a href="#">03/11(화)</a></th><td>토스트</td><td>비빔밥</td></tr>
</tbody></table>
</body></html>`

func eucKR(t testing.TB, s string) []byte {
	t.Helper()
	out, err := korean.EUCKR.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return out
}

// dormServer serves the schedule page in EUC-KR and counts requests.
func dormServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	body := eucKR(t, schedulePage)
	var hits atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/Khostel/mall_main.php" || r.URL.Query().Get("viewform") != "B0001_foodboard_list" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=euc-kr")
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}
