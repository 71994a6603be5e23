package session

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/remote"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
	"github.com/goliatone/go-formbuilder/pkg/wire"
)

func newSession(t *testing.T, body []byte) (*Session, *testsupport.Remote) {
	t.Helper()

	fake := testsupport.NewRemote(t, body)
	client, err := remote.New(fake.URL)
	if err != nil {
		t.Fatalf("remote client: %v", err)
	}
	s := New(client, WithBuilderOptions(builder.WithIDGenerator(builder.NewSequenceGenerator("id"))))
	return s, fake
}

func TestLoadPopulatesState(t *testing.T) {
	s, _ := newSession(t, testsupport.ContactPayload(t))
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	want := wire.FromWire(wire.ToWire(testsupport.ContactForm()))
	if diff := cmp.Diff(want, s.Snapshot().Groups()); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
	if s.LoadErr() != nil {
		t.Fatalf("unexpected load error %v", s.LoadErr())
	}
}

func TestLoadFailureEmptiesState(t *testing.T) {
	s, fake := newSession(t, testsupport.ContactPayload(t))
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	fake.Fail(http.StatusServiceUnavailable)
	err := s.Reload(context.Background())
	if !remote.IsNetworkError(err) {
		t.Fatalf("expected network error, got %v", err)
	}
	if s.Snapshot().Len() != 0 {
		t.Fatalf("failed load should leave an empty tree")
	}
	if s.LoadErr() == nil {
		t.Fatalf("load error not retained")
	}

	fake.Fail(0)
	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if s.Snapshot().Len() != 2 || s.LoadErr() != nil {
		t.Fatalf("reload should recover, got %d groups, err %v", s.Snapshot().Len(), s.LoadErr())
	}
}

func TestSavePushesSnapshot(t *testing.T) {
	s, fake := newSession(t, []byte(`[]`))
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	s.Apply(func(state builder.State) builder.State {
		return state.DropField(model.FieldTypeText, "", builder.AppendIndex)
	})

	if err := s.Save(context.Background(), SaveDraft); err != nil {
		t.Fatalf("save: %v", err)
	}
	pushes := fake.Pushes()
	if len(pushes) != 1 {
		t.Fatalf("expected one push, got %d", len(pushes))
	}
	want := `[{"fieldsetName":"Field-set","fieldsetTextId":"id2","fields":[{"labelName":"Text Field","labelTextId":"id1","inputType":"text","options":""}]}]`
	if diff := cmp.Diff(want, string(pushes[0])); diff != "" {
		t.Fatalf("push mismatch (-want +got):\n%s", diff)
	}
}

func TestFailedSaveLeavesStateUnchanged(t *testing.T) {
	s, fake := newSession(t, testsupport.ContactPayload(t))
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	before := s.Snapshot().Groups()

	fake.Fail(http.StatusBadGateway)
	err := s.Save(context.Background(), SaveFinal)
	if !remote.IsNetworkError(err) {
		t.Fatalf("expected network error, got %v", err)
	}
	if diff := cmp.Diff(before, s.Snapshot().Groups()); diff != "" {
		t.Fatalf("state changed after failed save (-want +got):\n%s", diff)
	}
	if s.SaveErr() == nil || s.Saving() {
		t.Fatalf("save error should be kept and the flag cleared")
	}

	fake.Fail(0)
	if err := s.Save(context.Background(), SaveFinal); err != nil {
		t.Fatalf("retry save: %v", err)
	}
	if s.SaveErr() != nil {
		t.Fatalf("successful save should clear the error")
	}
}

func TestOverlappingSaveRejected(t *testing.T) {
	s, fake := newSession(t, []byte(`[]`))
	fake.Block()

	done := make(chan error, 1)
	go func() {
		done <- s.Save(context.Background(), SaveFinal)
	}()

	select {
	case <-fake.Received():
	case <-time.After(2 * time.Second):
		t.Fatalf("first save never reached the remote")
	}

	if err := s.Save(context.Background(), SaveDraft); !errors.Is(err, ErrSaveInProgress) {
		t.Fatalf("expected ErrSaveInProgress, got %v", err)
	}

	s.Apply(func(state builder.State) builder.State {
		return state.DropField(model.FieldTypeDate, "", builder.AppendIndex)
	})

	fake.Release()
	if err := <-done; err != nil {
		t.Fatalf("first save: %v", err)
	}
	if len(fake.Pushes()) != 1 || string(fake.Body()) != "[]" {
		t.Fatalf("pending save should push the snapshot taken at call time, got %s", fake.Body())
	}
	if s.Snapshot().Len() != 1 {
		t.Fatalf("edit made during save should be kept")
	}
}

func TestUpdateErrorKeepsState(t *testing.T) {
	s, _ := newSession(t, []byte(`[]`))
	boom := errors.New("boom")
	_, err := s.Update(func(state builder.State) (builder.State, error) {
		return state.DropField(model.FieldTypeText, "", builder.AppendIndex), boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if s.Snapshot().Len() != 0 {
		t.Fatalf("failed update should not change state")
	}
}

func TestSubscribeEvents(t *testing.T) {
	s, _ := newSession(t, []byte(`[]`))
	events, cancel := s.Subscribe()
	defer cancel()

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	s.Apply(func(state builder.State) builder.State {
		return state.DropField(model.FieldTypeText, "", builder.AppendIndex)
	})
	if err := s.Save(context.Background(), SaveDraft); err != nil {
		t.Fatalf("save: %v", err)
	}

	var got []EventType
	for i := 0; i < 4; i++ {
		select {
		case ev := <-events:
			got = append(got, ev.Type)
			if ev.Type == EventSaved && ev.Kind != SaveDraft {
				t.Fatalf("saved event should carry the kind, got %q", ev.Kind)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out after %v", got)
		}
	}
	want := []EventType{EventLoaded, EventChanged, EventSaving, EventSaved}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}

	cancel()
	if _, ok := <-events; ok {
		t.Fatalf("channel should be closed after cancel")
	}
}

func TestNoStore(t *testing.T) {
	s := New(nil)
	if err := s.Load(context.Background()); !errors.Is(err, ErrNoStore) {
		t.Fatalf("expected ErrNoStore, got %v", err)
	}
	if err := s.Save(context.Background(), SaveFinal); !errors.Is(err, ErrNoStore) {
		t.Fatalf("expected ErrNoStore, got %v", err)
	}
}
