package registry

import (
	"errors"
	"io"
	"testing"
)

type fakeRenderer struct{ opts Options }

func (f *fakeRenderer) Format() string      { return "fake" }
func (f *fakeRenderer) Title() string       { return "Fake" }
func (f *fakeRenderer) ContentType() string { return "text/plain" }
func (f *fakeRenderer) Render(w io.Writer, _ Scene) error {
	_, err := io.WriteString(w, "ok")
	return err
}

func init() {
	Register("fake", func(opts Options) Renderer { return &fakeRenderer{opts: opts} })
}

func TestRegistryCreate(t *testing.T) {
	r, err := Create("fake", Options{Size: 64})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got := r.(*fakeRenderer).opts.Size; got != 64 {
		t.Errorf("options not passed to factory, Size = %d", got)
	}

	_, err = Create("bmp", Options{})
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Create(bmp) error = %v, expected ErrUnknownFormat", err)
	}
}

func TestRegistryList(t *testing.T) {
	if !Exists("fake") {
		t.Fatal("fake renderer should be registered")
	}
	if Exists("bmp") {
		t.Error("bmp should not be registered")
	}

	var found bool
	for _, info := range List() {
		if info.Format == "fake" {
			found = true
			if info.Title != "Fake" || info.ContentType != "text/plain" {
				t.Errorf("unexpected info %+v", info)
			}
		}
	}
	if !found {
		t.Error("List() should include fake")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("fake", func(opts Options) Renderer { return &fakeRenderer{} })
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"goal", KindGoal, false},
		{"live", KindLive, false},
		{"both", "", true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseKind(%q) = %q, %v", tt.in, got, err)
		}
	}
}
