package lineup

import (
	"net/url"
	"testing"
)

func BenchmarkDecode(b *testing.B) {
	roster := testRoster()
	params := url.Values{}
	params.Set(ParamLineup, "1c50.2s3.3f00.4t7.5l9.6m11.7r18.8n23.9d31.bad.0x1")
	params.Set(ParamStartingPitcher, "55")
	params.Set(ParamDH, "1")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if s := Decode(params, roster); s == nil {
			b.Fatalf("expected a lineup")
		}
	}
}

func BenchmarkEncode(b *testing.B) {
	roster := testRoster()
	s := Decode(url.Values{ParamLineup: {"1c50.2s3.3f00.4t7.5l9.6m11.7r18.8n23.9d31"}, ParamDH: {"1"}}, roster)
	if s == nil {
		b.Fatalf("expected a lineup")
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if params := Encode(*s); params.Get(ParamLineup) == "" {
			b.Fatalf("expected lineup parameter")
		}
	}
}
