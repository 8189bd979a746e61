package langgate

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

type stubDetector struct {
	lang  string
	prob  float64
	err   error
	calls int
}

func (d *stubDetector) Detect(text string) (string, float64, error) {
	d.calls++
	return d.lang, d.prob, d.err
}

func TestGateDisabledAcceptsEverything(t *testing.T) {
	detector := &stubDetector{lang: "de", prob: 0.99}
	gate := New(detector, nil, zerolog.Nop())

	if gate.Enabled() {
		t.Fatal("gate with empty allow-list should be disabled")
	}
	for _, text := range []string{"", "gibberish qwzx", "hello world"} {
		if !gate.Accept(text) {
			t.Errorf("disabled gate rejected %q", text)
		}
	}
	if detector.calls != 0 {
		t.Errorf("disabled gate called the detector %d times", detector.calls)
	}
}

func TestGateAccept(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		lang    string
		prob    float64
		err     error
		want    bool
	}{
		{"allowed confident", []string{"en", "fr"}, "en", 0.97, nil, true},
		{"allowed at threshold", []string{"en"}, "en", 0.9, nil, true},
		{"allowed below threshold", []string{"en"}, "en", 0.6, nil, false},
		{"wrong language", []string{"en"}, "fr", 0.99, nil, false},
		{"detector failure", []string{"en"}, "", 0, errors.New("no features"), false},
		{"case insensitive allow-list", []string{"EN"}, "en", 0.95, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detector := &stubDetector{lang: tt.lang, prob: tt.prob, err: tt.err}
			gate := New(detector, tt.allowed, zerolog.Nop())
			if got := gate.Accept("some extracted text"); got != tt.want {
				t.Errorf("Accept() = %v, want %v", got, tt.want)
			}
		})
	}
}
