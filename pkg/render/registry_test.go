package render

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jobkit/appform/pkg/schema"
)

type namedRenderer struct {
	name string
}

func (r *namedRenderer) Name() string { return r.name }

func (r *namedRenderer) Render(context.Context, schema.JobListing, Session, RenderOptions) error {
	return nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	renderer := &namedRenderer{name: "tui"}

	if err := registry.Register(renderer); err != nil {
		t.Fatalf("register: %v", err)
	}
	got, err := registry.Get("tui")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != Renderer(renderer) {
		t.Fatal("registry returned a different renderer")
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(&namedRenderer{name: "tui"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register(&namedRenderer{name: "tui"}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}

func TestRegistryRejectsNilAndUnnamed(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(nil); err == nil {
		t.Fatal("expected error for nil renderer")
	}
	if err := registry.Register(&namedRenderer{}); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestRegistryListSorted(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(&namedRenderer{name: "web"})
	registry.MustRegister(&namedRenderer{name: "tui"})

	if diff := cmp.Diff([]string{"tui", "web"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("tui") || registry.Has("gtk") {
		t.Fatal("Has answered incorrectly")
	}
}
