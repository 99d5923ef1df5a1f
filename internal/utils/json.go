package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	talenterrors "github.com/Flamage82/WowTalentComparer/internal/errors"
)

const maxRequestBody = 1 << 20

func DecodeJSONRequest(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		return fmt.Errorf("%w: failed to read request body: %v", talenterrors.ErrInvalidRequest, err)
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err = decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", talenterrors.ErrInvalidRequest, err)
	}
	return nil
}
