package talent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Flamage82/WowTalentComparer/internal/domain/talent"
	"github.com/Flamage82/WowTalentComparer/internal/domain/talent/branch"
	"github.com/Flamage82/WowTalentComparer/internal/domain/talent/codec"
	talenterrors "github.com/Flamage82/WowTalentComparer/internal/errors"
	talentuc "github.com/Flamage82/WowTalentComparer/internal/usecase/talent"
)

const marksmanshipBuild = "C4PAAAAAAAAAAAAAAAAAAAAAAwCMwwohBwMYDAAAAAAAAYGzMzYbGzYMDGTzYMzYZbzMzMMzMMzsMGzywMDAAgxYAwoNwAsN"

type noTopologies struct{}

func (noTopologies) Topology(_ context.Context, specID int) (*talent.Topology, error) {
	return nil, fmt.Errorf("%w: spec %d", talenterrors.ErrTopologyNotFound, specID)
}

type envelope struct {
	Status int             `json:"Status"`
	Body   json.RawMessage `json:"Body"`
}

func newRouter() http.Handler {
	log := zap.NewNop().Sugar()
	uc := talentuc.NewTalentUseCase(log, noTopologies{}, talentuc.NewPartitionCache(log, branch.DefaultPolicy, nil, nil))
	r := chi.NewRouter()
	NewTalentHandler(log, uc).Routes(r)
	return r
}

func post(t *testing.T, h http.Handler, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data)))

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func otherSpecBuild(t *testing.T) string {
	t.Helper()
	s, err := codec.Encode(&talent.SelectionRecord{Version: 2, SpecID: 253})
	require.NoError(t, err)
	return s
}

func TestHandleParse(t *testing.T) {
	rec, env := post(t, newRouter(), "/builds/parse", ParseRequest{ExportString: marksmanshipBuild})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Version    int               `json:"version"`
		SpecID     int               `json:"specId"`
		SpecName   string            `json:"specName"`
		TreeHash   string            `json:"treeHash"`
		Selections []json.RawMessage `json:"selections"`
	}
	require.NoError(t, json.Unmarshal(env.Body, &body))
	assert.Equal(t, 2, body.Version)
	assert.Equal(t, 254, body.SpecID)
	assert.Equal(t, "Marksmanship Hunter", body.SpecName)
	assert.Len(t, body.TreeHash, 32)
	assert.NotEmpty(t, body.Selections)
}

func TestHandleParse_Errors(t *testing.T) {
	h := newRouter()

	rec, env := post(t, h, "/builds/parse", ParseRequest{ExportString: "invalid!@#$"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Body), "invalid character")

	rec, _ = post(t, h, "/builds/parse", ParseRequest{ExportString: "ABC"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = post(t, h, "/builds/parse", ParseRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = post(t, h, "/builds/parse", map[string]string{"unknown": "field"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDiff(t *testing.T) {
	h := newRouter()

	rec, env := post(t, h, "/builds/diff", DiffRequest{Baseline: marksmanshipBuild, Candidate: marksmanshipBuild})
	require.Equal(t, http.StatusOK, rec.Code)
	var res talent.DiffResult
	require.NoError(t, json.Unmarshal(env.Body, &res))
	assert.Empty(t, res.Summary.Added)
	assert.Empty(t, res.Summary.Removed)
	assert.Empty(t, res.Summary.Changed)
	assert.NotEmpty(t, res.Entries)

	rec, env = post(t, h, "/builds/diff", DiffRequest{Baseline: marksmanshipBuild, Candidate: otherSpecBuild(t)})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, string(env.Body), "Marksmanship Hunter")
	assert.Contains(t, string(env.Body), "Beast Mastery Hunter")

	rec, _ = post(t, h, "/builds/diff", DiffRequest{Baseline: marksmanshipBuild})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleLayout_UnknownTopology(t *testing.T) {
	rec, _ := post(t, newRouter(), "/builds/layout", ParseRequest{ExportString: marksmanshipBuild})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleSpecs(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/specs", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var specs []talent.Spec
	require.NoError(t, json.Unmarshal(env.Body, &specs))
	assert.NotEmpty(t, specs)
}

func TestHandleCompareStream(t *testing.T) {
	srv := httptest.NewServer(newRouter())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/compare"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(DiffRequest{Baseline: marksmanshipBuild, Candidate: marksmanshipBuild}))
	var frame CompareFrame
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, 1, frame.Seq)
	require.NotNil(t, frame.Diff)
	assert.Empty(t, frame.Error)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	frame = CompareFrame{}
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, 2, frame.Seq)
	assert.Equal(t, http.StatusBadRequest, frame.Status)

	require.NoError(t, conn.WriteJSON(DiffRequest{Baseline: marksmanshipBuild, Candidate: otherSpecBuild(t)}))
	frame = CompareFrame{}
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, 3, frame.Seq)
	assert.Nil(t, frame.Diff)
	assert.Equal(t, http.StatusUnprocessableEntity, frame.Status)
}
