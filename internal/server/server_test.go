package server

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/remote"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/openapi"
	"github.com/goliatone/go-formbuilder/pkg/renderers/payload"
	"github.com/goliatone/go-formbuilder/pkg/renderers/preview"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
	"github.com/goliatone/go-formbuilder/pkg/wire"
)

type fixture struct {
	remote *testsupport.Remote
	sess   *session.Session
	srv    *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	fake := testsupport.NewRemote(t, testsupport.ContactPayload(t))
	client, err := remote.New(fake.URL)
	require.NoError(t, err)

	sess := session.New(client, session.WithBuilderOptions(builder.WithIDGenerator(builder.NewSequenceGenerator("id"))))
	require.NoError(t, sess.Load(context.Background()))

	previewRenderer, err := preview.New()
	require.NoError(t, err)
	registry, err := render.NewRegistry(previewRenderer, payload.New(), openapi.New())
	require.NoError(t, err)

	s, err := New(sess,
		WithRenderers(registry),
		WithAssets(preview.AssetsFS()),
		WithRenderDefaults(render.RenderOptions{Title: "Signup"}),
	)
	require.NoError(t, err)

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return &fixture{remote: fake, sess: sess, srv: srv}
}

func (f *fixture) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(v)
	default:
		data, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, f.srv.URL+path, reader)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func (f *fixture) state(t *testing.T, method, path string, body any) stateView {
	t.Helper()
	resp, data := f.do(t, method, path, body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	var view stateView
	require.NoError(t, json.Unmarshal(data, &view))
	return view
}

func (f *fixture) errorCode(t *testing.T, method, path string, body any) (int, string) {
	t.Helper()
	resp, data := f.do(t, method, path, body)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(data, &payload), string(data))
	return resp.StatusCode, payload["code"]
}

func fieldNames(group model.Group) []string {
	names := make([]string, len(group.Fields))
	for i, field := range group.Fields {
		names[i] = field.Name
	}
	return names
}

func TestReadEndpoints(t *testing.T) {
	f := newFixture(t)

	resp, _ := f.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, data := f.do(t, http.MethodGet, "/api/palette", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var palette []map[string]string
	require.NoError(t, json.Unmarshal(data, &palette))
	assert.Len(t, palette, 9)

	view := f.state(t, http.MethodGet, "/api/state", nil)
	require.Len(t, view.Fieldsets, 2)
	assert.Equal(t, "Contact", view.Fieldsets[0].Name)
	assert.Nil(t, view.Selection)
	assert.False(t, view.Saving)

	resp, data = f.do(t, http.MethodGet, "/api/lint", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"valid":true`)

	resp, data = f.do(t, http.MethodGet, "/api/renderers", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var renderers []render.Descriptor
	require.NoError(t, json.Unmarshal(data, &renderers))
	require.Len(t, renderers, 3)
	assert.Equal(t, render.Descriptor{Name: "openapi", ContentType: "application/json"}, renderers[0])

	resp, data = f.do(t, http.MethodGet, "/assets/"+preview.StylesheetName, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "--fb-")
}

func TestDropAndEditFields(t *testing.T) {
	f := newFixture(t)
	contact := f.state(t, http.MethodGet, "/api/state", nil).Fieldsets[0]

	view := f.state(t, http.MethodPost, "/api/drop", map[string]any{
		"payload": map[string]any{"kind": "new", "type": "text"},
		"target":  map[string]any{"kind": "field", "groupId": contact.ID, "index": 0},
	})
	group := view.Fieldsets[0]
	require.Len(t, group.Fields, 6)
	dropped := group.Fields[0]
	assert.Equal(t, "Text Field", dropped.Name)
	require.NotNil(t, view.Selection)
	assert.Equal(t, dropped.ID, view.Selection.ID())

	path := "/api/fieldsets/" + contact.ID + "/fields/" + dropped.ID
	view = f.state(t, http.MethodPatch, path, map[string]any{"name": "Email", "required": true})
	assert.Equal(t, "Email", view.Fieldsets[0].Fields[0].Name)
	assert.True(t, view.Fieldsets[0].Fields[0].Required)
	assert.Equal(t, "Email", view.Selection.Field.Name, "selection follows the edit")

	view = f.state(t, http.MethodPost, path+"/duplicate", nil)
	assert.Equal(t, []string{"Email", "Text Field", "Intro"}, fieldNames(view.Fieldsets[0])[:3])

	view = f.state(t, http.MethodDelete, path, nil)
	assert.Equal(t, "Text Field", view.Fieldsets[0].Fields[0].Name)
	assert.Nil(t, view.Selection)

	view = f.state(t, http.MethodPatch, "/api/fieldsets/"+contact.ID, map[string]any{"name": "About you"})
	assert.Equal(t, "About you", view.Fieldsets[0].Name)

	status, code := f.errorCode(t, http.MethodPatch, "/api/fieldsets/"+contact.ID+"/fields/missing", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, CodeNotFound, code)

	status, code = f.errorCode(t, http.MethodPatch, path, `{"name": 3}`)
	assert.Equal(t, http.StatusNotFound, status, "deleted field is gone")
	assert.Equal(t, CodeNotFound, code)

	status, code = f.errorCode(t, http.MethodPost, "/api/drop", map[string]any{
		"payload": map[string]any{"kind": "new", "type": "signature"},
		"target":  map[string]any{"kind": "canvas"},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, CodeInvalidPayload, code)

	status, code = f.errorCode(t, http.MethodPost, "/api/drop", `{"payload":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, CodeInvalidBody, code)
}

func TestOptionEndpoints(t *testing.T) {
	f := newFixture(t)
	prefs := f.state(t, http.MethodGet, "/api/state", nil).Fieldsets[1]
	contactBy := prefs.Fields[0]
	path := "/api/fieldsets/" + prefs.ID + "/fields/" + contactBy.ID + "/options"

	view := f.state(t, http.MethodPost, path, nil)
	options := view.Fieldsets[1].Fields[0].Options
	require.Len(t, options, 3)
	assert.Equal(t, "Option 3", options[2].Value)

	view = f.state(t, http.MethodPatch, path+"/"+options[2].ID, map[string]string{"value": "Post"})
	assert.Equal(t, "Post", view.Fieldsets[1].Fields[0].Options[2].Value)

	view = f.state(t, http.MethodDelete, path+"/"+options[0].ID, nil)
	var values []string
	for _, option := range view.Fieldsets[1].Fields[0].Options {
		values = append(values, option.Value)
	}
	assert.Equal(t, []string{"Phone", "Post"}, values)
}

func TestMoves(t *testing.T) {
	f := newFixture(t)
	groups := f.state(t, http.MethodGet, "/api/state", nil).Fieldsets

	view := f.state(t, http.MethodPost, "/api/moves/field", moveFieldRequest{
		SourceGroupID: groups[0].ID, SourceIndex: 0,
		TargetGroupID: groups[0].ID, TargetIndex: 2,
	})
	assert.Equal(t, []string{"Full name", "Age", "Intro", "Birthday", "About"}, fieldNames(view.Fieldsets[0]))

	view = f.state(t, http.MethodPost, "/api/moves/fieldset", moveFieldsetRequest{From: 1, To: 0})
	assert.Equal(t, "Preferences", view.Fieldsets[0].Name)

	view = f.state(t, http.MethodPost, "/api/moves/fieldset", moveFieldsetRequest{From: 5, To: 0})
	assert.Equal(t, "Preferences", view.Fieldsets[0].Name, "out of range moves are ignored")
}

func TestSelectionAndProperties(t *testing.T) {
	f := newFixture(t)
	groups := f.state(t, http.MethodGet, "/api/state", nil).Fieldsets

	status, code := f.errorCode(t, http.MethodPost, "/api/properties", map[string]any{"changes": map[string]any{"name": "x"}})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, CodeNoSelection, code)

	country := groups[1].Fields[1]
	view := f.state(t, http.MethodPost, "/api/selection", selectionRequest{GroupID: groups[1].ID, FieldID: country.ID})
	require.NotNil(t, view.Selection)
	assert.Equal(t, model.SelectionField, view.Selection.Kind)

	view = f.state(t, http.MethodPost, "/api/properties", map[string]any{"changes": map[string]any{
		"name":    "Nation",
		"options": map[string]string{country.Options[0].ID: "Sweden"},
	}})
	edited := view.Fieldsets[1].Fields[1]
	assert.Equal(t, "Nation", edited.Name)
	assert.Equal(t, "Sweden", edited.Options[0].Value)
	assert.Equal(t, "Nation", view.Selection.Field.Name)

	view = f.state(t, http.MethodPost, "/api/selection", selectionRequest{GroupID: groups[0].ID})
	assert.Equal(t, model.SelectionFieldset, view.Selection.Kind)

	view = f.state(t, http.MethodDelete, "/api/selection", nil)
	assert.Nil(t, view.Selection)

	status, code = f.errorCode(t, http.MethodPost, "/api/selection", selectionRequest{GroupID: "nope"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, CodeNotFound, code)
}

func TestSaveAndReload(t *testing.T) {
	f := newFixture(t)
	groups := f.state(t, http.MethodGet, "/api/state", nil).Fieldsets

	f.state(t, http.MethodPatch, "/api/fieldsets/"+groups[0].ID, map[string]any{"name": "Profile"})
	f.state(t, http.MethodPost, "/api/save", map[string]string{"kind": "draft"})

	pushes := f.remote.Pushes()
	require.Len(t, pushes, 1)
	pushed, err := wire.DecodePayload(pushes[0])
	require.NoError(t, err)
	assert.Equal(t, "Profile", pushed[0].FieldsetName)

	f.state(t, http.MethodPatch, "/api/fieldsets/"+groups[0].ID, map[string]any{"name": "Unsaved"})
	view := f.state(t, http.MethodPost, "/api/reload", nil)
	assert.Equal(t, "Profile", view.Fieldsets[0].Name)

	f.remote.Fail(http.StatusServiceUnavailable)
	status, code := f.errorCode(t, http.MethodPost, "/api/save", nil)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, CodeNetworkError, code)

	view = f.state(t, http.MethodGet, "/api/state", nil)
	assert.Equal(t, "Profile", view.Fieldsets[0].Name, "failed saves leave the tree alone")
	assert.NotEmpty(t, view.SaveError)

	status, code = f.errorCode(t, http.MethodPost, "/api/save", map[string]string{"kind": "later"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, CodeInvalidBody, code)
}

func TestOverlappingSaveIsRejected(t *testing.T) {
	f := newFixture(t)
	f.remote.Block()

	done := make(chan int, 1)
	go func() {
		resp, err := http.Post(f.srv.URL+"/api/save", "application/json", nil)
		if err != nil {
			done <- 0
			return
		}
		resp.Body.Close()
		done <- resp.StatusCode
	}()

	select {
	case <-f.remote.Received():
	case <-time.After(5 * time.Second):
		t.Fatal("first save never reached the remote")
	}

	status, code := f.errorCode(t, http.MethodPost, "/api/save", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, CodeSaveInProgress, code)

	f.remote.Release()
	assert.Equal(t, http.StatusOK, <-done)
}

func TestRenderEndpoints(t *testing.T) {
	f := newFixture(t)

	resp, data := f.do(t, http.MethodGet, "/render/preview?title=Join+us", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(data), "Join us")
	assert.Contains(t, string(data), "<form")

	resp, data = f.do(t, http.MethodGet, "/render/wire", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	groups, err := wire.DecodePayload(data)
	require.NoError(t, err)
	assert.Len(t, groups, 2)

	resp, data = f.do(t, http.MethodGet, "/render/openapi", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	_, err = openapi.Load(context.Background(), data)
	require.NoError(t, err)

	status, code := f.errorCode(t, http.MethodGet, "/render/pdf", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, CodeUnknownRenderer, code)

	status, code = f.errorCode(t, http.MethodGet, "/render/preview?theme=missing", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, CodeRenderFailed, code)
}

func TestWebsocketFeed(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(f.srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	var first eventView
	require.NoError(t, wsjson.Read(ctx, conn, &first))
	assert.Equal(t, "snapshot", first.Type)
	require.Len(t, first.State.Fieldsets, 2)

	groupID := first.State.Fieldsets[0].ID
	f.state(t, http.MethodPatch, "/api/fieldsets/"+groupID, map[string]any{"name": "Renamed"})

	var changed eventView
	require.NoError(t, wsjson.Read(ctx, conn, &changed))
	assert.Equal(t, string(session.EventChanged), changed.Type)
	assert.Equal(t, "Renamed", changed.State.Fieldsets[0].Name)

	f.state(t, http.MethodPost, "/api/save", nil)
	var saving, saved eventView
	require.NoError(t, wsjson.Read(ctx, conn, &saving))
	require.NoError(t, wsjson.Read(ctx, conn, &saved))
	assert.Equal(t, string(session.EventSaving), saving.Type)
	assert.Equal(t, string(session.EventSaved), saved.Type)
	assert.Equal(t, string(session.SaveFinal), saved.Kind)

	conn.Close(websocket.StatusNormalClosure, "")
}

func TestNewRequiresSession(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}
