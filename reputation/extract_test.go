package reputation

import "testing"

const sampleCheckBody = `{
  "data": {
    "ipAddress": "8.8.8.8",
    "isPublic": true,
    "ipVersion": 4,
    "isWhitelisted": true,
    "abuseConfidenceScore": 0,
    "countryCode": "US",
    "usageType": "Data Center\/Web Hosting\/Transit",
    "isp": "Google LLC",
    "domain": "google.com",
    "totalReports": 27,
    "numDistinctUsers": 13,
    "lastReportedAt": "2026-08-21T14:11:00+00:00"
  }
}`

func TestExtractStringFindsFields(t *testing.T) {
	cases := []struct {
		key  string
		want string
	}{
		{"isp", "Google LLC"},
		{"countryCode", "US"},
		{"usageType", "Data Center/Web Hosting/Transit"},
		{"domain", "google.com"},
	}
	for _, tc := range cases {
		got, ok := ExtractString(sampleCheckBody, tc.key)
		if !ok {
			t.Fatalf("expected key %q to be found", tc.key)
		}
		if got != tc.want {
			t.Errorf("key %q: expected %q, got %q", tc.key, tc.want, got)
		}
	}
}

func TestExtractStringAbsentCases(t *testing.T) {
	cases := []struct {
		name string
		body string
		key  string
	}{
		{"missing key", `{"data":{"countryCode":"US"}}`, "isp"},
		{"non-string value", `{"isp": 123}`, "isp"},
		{"null value", `{"isp": null}`, "isp"},
		{"empty body", ``, "isp"},
		{"key inside value only", `{"note":"isp"}`, "isp"},
	}
	for _, tc := range cases {
		if got, ok := ExtractString(tc.body, tc.key); ok {
			t.Errorf("%s: expected absent, got %q", tc.name, got)
		}
	}
}

func TestExtractStringDecodesEscapes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"quote and backslash", `{"isp":"Café \"Prime\" Networks\\EU"}`, "Café \"Prime\" Networks\\EU"},
		{"solidus", `{"isp":"Web\/Hosting"}`, "Web/Hosting"},
		{"control characters", `{"isp":"a\nb\tc\rd"}`, "a\nb\tc\rd"},
		{"surrogate pair", `{"isp":"😀 Hosting"}`, "\U0001f600 Hosting"},
		{"unpaired surrogate", `{"isp":"x\ud83dy"}`, "x�y"},
		{"unknown escape passes through", `{"isp":"a\qb"}`, `a\qb`},
		{"bad hex passes through", `{"isp":"a\uZZZZb"}`, `a\uZZZZb`},
		{"empty value", `{"isp":""}`, ""},
	}
	for _, tc := range cases {
		got, ok := ExtractString(tc.body, "isp")
		if !ok {
			t.Fatalf("%s: expected value to be found", tc.name)
		}
		if got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestExtractStringFirstOccurrenceWins(t *testing.T) {
	body := `{"isp":"First ISP","nested":{"isp":"Second ISP"}}`
	got, ok := ExtractString(body, "isp")
	if !ok || got != "First ISP" {
		t.Fatalf("expected first occurrence %q, got %q (found=%v)", "First ISP", got, ok)
	}
}

func TestExtractInteger(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		want   int
		wantOK bool
	}{
		{"plain value", `{"abuseConfidenceScore": 17}`, 17, true},
		{"zero", sampleCheckBody, 0, true},
		{"negative", `{"abuseConfidenceScore": -3}`, -3, true},
		{"no space after colon", `{"abuseConfidenceScore":88}`, 88, true},
		{"newline after colon", "{\"abuseConfidenceScore\":\n\t55}", 55, true},
		{"quoted number is absent", `{"abuseConfidenceScore": "55"}`, 0, false},
		{"non-numeric is absent", `{"abuseConfidenceScore": "n/a"}`, 0, false},
		{"null is absent", `{"abuseConfidenceScore": null}`, 0, false},
		{"missing key", `{"countryCode":"US"}`, 0, false},
		{"overflow is absent", `{"abuseConfidenceScore": 99999999999999999999}`, 0, false},
	}
	for _, tc := range cases {
		got, ok := ExtractInteger(tc.body, "abuseConfidenceScore")
		if ok != tc.wantOK {
			t.Fatalf("%s: expected found=%v, got %v", tc.name, tc.wantOK, ok)
		}
		if got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}
