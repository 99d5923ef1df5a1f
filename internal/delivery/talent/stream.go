package talent

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Flamage82/WowTalentComparer/internal/domain/talent"
	talenterrors "github.com/Flamage82/WowTalentComparer/internal/errors"
	"github.com/Flamage82/WowTalentComparer/internal/httpresponse"
	"github.com/Flamage82/WowTalentComparer/internal/middleware"
)

const (
	writeWait      = 10 * time.Second
	maxFrameSize   = 64 << 10
	streamIdleTime = 5 * time.Minute
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// CompareFrame is the reply to one DiffRequest frame: either Diff or Error is
// set.
type CompareFrame struct {
	Seq    int                `json:"seq"`
	Diff   *talent.DiffResult `json:"diff,omitempty"`
	Error  string             `json:"error,omitempty"`
	Status int                `json:"status,omitempty"`
}

// HandleCompareStream upgrades to a websocket and answers every DiffRequest
// frame with a CompareFrame, so an editor can re-diff on each keystroke
// without a request per change. A bad frame gets an error frame; the
// connection stays open.
func (h *TalentHandler) HandleCompareStream(w http.ResponseWriter, r *http.Request) {
	log := middleware.Logger(r.Context(), h.log)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxFrameSize)

	for seq := 1; ; seq++ {
		_ = conn.SetReadDeadline(time.Now().Add(streamIdleTime))
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Infow("compare stream closed", "error", err)
			}
			return
		}

		frame := CompareFrame{Seq: seq}
		var req DiffRequest
		if err := json.Unmarshal(data, &req); err != nil {
			frame.Error, frame.Status = fmt.Sprintf("%v: invalid JSON: %v", talenterrors.ErrInvalidRequest, err), http.StatusBadRequest
		} else if err := req.validate(); err != nil {
			frame.Error, frame.Status = err.Error(), httpresponse.StatusFor(err)
		} else if res, err := h.talentUC.CompareBuilds(r.Context(), req.Baseline, req.Candidate); err != nil {
			frame.Error, frame.Status = err.Error(), httpresponse.StatusFor(err)
		} else {
			frame.Diff = res
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(frame); err != nil {
			log.Warnw("compare stream write failed", "error", err)
			return
		}
	}
}
